package main

import (
	_ "embed"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tomz197/knockoffs/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

// renderPage fills the SSH connection hint into the landing page.
func renderPage(sshHost, sshPort string) string {
	cmd := "ssh " + sshHost
	if sshPort != "" && sshPort != "22" {
		cmd = fmt.Sprintf("ssh -p %s %s", sshPort, sshHost)
	}
	return strings.NewReplacer(
		"{{.SSHHost}}", sshHost,
		"{{.SSHCommand}}", cmd,
	).Replace(htmlPage)
}

func main() {
	logger := config.NewLogger(os.Stderr, log.InfoLevel)

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	page := renderPage(
		config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		config.GetEnv("SSH_DISPLAY_PORT", "2222"),
	)

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("web server", "err", err)
	}
}

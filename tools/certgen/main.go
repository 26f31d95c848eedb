// Package main generates a Certificate Authority (CA) and a server
// certificate for serving the task API over HTTPS, writing them under
// the "certs" directory. An existing CA in that directory is reused.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atinyakov/GophTasks/internal/certgen"
)

const (
	caValidity     = 10 * 365 * 24 * time.Hour
	serverValidity = 365 * 24 * time.Hour
)

func main() {
	dir := flag.String("dir", "certs", "output directory")
	hosts := flag.String("hosts", "localhost,127.0.0.1", "comma-separated server host names and IPs")
	flag.Parse()

	if err := run(*dir, strings.Split(*hosts, ",")); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✅ Certificates generated into", *dir)
}

// run writes ca.crt/ca.key (unless they already exist) and
// server.crt/server.key for hosts into dir.
func run(dir string, hosts []string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	caCert, caKey := filepath.Join(dir, "ca.crt"), filepath.Join(dir, "ca.key")
	ca, err := certgen.LoadCA(caCert, caKey)
	if err != nil {
		if ca, err = certgen.GenerateCA("GophTasks CA", caValidity); err != nil {
			return err
		}
		if err := writePair(caCert, caKey, ca); err != nil {
			return err
		}
	}

	srv, err := certgen.GenerateServerCertificate(hosts, ca.Cert, ca.Key, serverValidity)
	if err != nil {
		return err
	}
	return writePair(filepath.Join(dir, "server.crt"), filepath.Join(dir, "server.key"), srv)
}

// writePair writes the certificate world-readable and the key owner-only.
func writePair(certPath, keyPath string, b *certgen.Bundle) error {
	if err := os.WriteFile(certPath, b.CertPEM, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", certPath, err)
	}
	if err := os.WriteFile(keyPath, b.KeyPEM, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", keyPath, err)
	}
	return nil
}

// internal/db/ssh.go
package db

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// SSHConfig holds bastion connection details for importing from a private network
type SSHConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	KeyPath  string
}

// SSHTunnel is an SSH client used as a dialer for database connections
type SSHTunnel struct {
	client *ssh.Client
}

// NewSSHTunnel establishes an SSH connection
func NewSSHTunnel(config *SSHConfig, log logrus.FieldLogger) (*SSHTunnel, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("SSH host is required")
	}
	log = log.WithField("ssh_host", config.Host)

	auth := sshAuthMethods(config, log)
	if len(auth) == 0 {
		return nil, fmt.Errorf("no valid SSH authentication methods found")
	}

	port := config.Port
	if port == 0 {
		port = 22
	}
	cliConfig := &ssh.ClientConfig{
		User:            config.User,
		Auth:            auth,
		HostKeyCallback: hostKeyCallback(log),
		Timeout:         15 * time.Second,
	}

	address := net.JoinHostPort(config.Host, fmt.Sprint(port))
	log.Debugf("dialing %s as %s", address, config.User)
	client, err := ssh.Dial("tcp", address, cliConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to dial SSH: %w", err)
	}
	return &SSHTunnel{client: client}, nil
}

// sshAuthMethods collects key file, agent and password auth, in that order
func sshAuthMethods(config *SSHConfig, log logrus.FieldLogger) []ssh.AuthMethod {
	var methods []ssh.AuthMethod

	if config.KeyPath != "" {
		if signer, err := loadSigner(config.KeyPath, config.Password); err != nil {
			log.WithError(err).Warn("skipping SSH key")
		} else {
			methods = append(methods, ssh.PublicKeys(signer))
		}
	}

	if socket := os.Getenv("SSH_AUTH_SOCK"); socket != "" {
		if conn, err := net.Dial("unix", socket); err == nil {
			methods = append(methods, ssh.PublicKeysCallback(agent.NewClient(conn).Signers))
		} else {
			log.WithError(err).Debug("ssh agent unavailable")
		}
	}

	if config.Password != "" {
		methods = append(methods,
			ssh.Password(config.Password),
			ssh.KeyboardInteractive(func(user, instruction string, questions []string, echos []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = config.Password
				}
				return answers, nil
			}),
		)
	}
	return methods
}

func loadSigner(keyPath, passphrase string) (ssh.Signer, error) {
	if strings.HasPrefix(keyPath, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			keyPath = filepath.Join(home, keyPath[2:])
		}
	}
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, err
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil && passphrase != "" {
		signer, err = ssh.ParsePrivateKeyWithPassphrase(key, []byte(passphrase))
	}
	return signer, err
}

// hostKeyCallback verifies against ~/.ssh/known_hosts when present
func hostKeyCallback(log logrus.FieldLogger) ssh.HostKeyCallback {
	home, err := os.UserHomeDir()
	if err == nil {
		if cb, err := knownhosts.New(filepath.Join(home, ".ssh", "known_hosts")); err == nil {
			return cb
		}
	}
	log.Warn("known_hosts unavailable, host key not verified")
	return ssh.InsecureIgnoreHostKey()
}

// Dial connects to a remote address through the tunnel
func (t *SSHTunnel) Dial(network, addr string) (net.Conn, error) {
	return t.client.Dial(network, addr)
}

// DialContext connects through the tunnel, giving up when ctx is done
func (t *SSHTunnel) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	type result struct {
		conn net.Conn
		err  error
	}
	ch := make(chan result, 1)

	go func() {
		conn, err := t.client.Dial(network, addr)
		ch <- result{conn, err}
	}()

	select {
	case <-ctx.Done():
		// close a connection that completes after we gave up on it
		go func() {
			if res := <-ch; res.conn != nil {
				res.conn.Close()
			}
		}()
		return nil, ctx.Err()
	case res := <-ch:
		return res.conn, res.err
	}
}

// Close closes the SSH connection
func (t *SSHTunnel) Close() error {
	return t.client.Close()
}

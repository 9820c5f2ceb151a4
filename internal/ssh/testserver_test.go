package ssh

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"

	"golang.org/x/crypto/ssh"
)

// testServer is a minimal in-process SSH server. It accepts a single
// password, interprets a handful of shell commands (true, exit N,
// echo ...) and records every executed command and auth attempt so
// tests can assert on side effects.
type testServer struct {
	listener net.Listener

	mu           sync.Mutex
	commands     []string
	authAttempts int
}

func startTestServer(t *testing.T, password string) *testServer {
	t.Helper()

	hostKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate host key: %v", err)
	}

	signer, err := ssh.NewSignerFromKey(hostKey)
	if err != nil {
		t.Fatalf("failed to create host signer: %v", err)
	}

	server := &testServer{}

	config := &ssh.ServerConfig{
		PasswordCallback: func(conn ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			server.mu.Lock()
			server.authAttempts++
			server.mu.Unlock()

			if string(pass) == password {
				return nil, nil
			}
			return nil, fmt.Errorf("password rejected for %q", conn.User())
		},
	}
	config.AddHostKey(signer)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	server.listener = listener
	t.Cleanup(func() { listener.Close() })

	go server.serve(config)

	return server
}

func (s *testServer) addr() (host string, port uint) {
	tcpAddr := s.listener.Addr().(*net.TCPAddr)
	return tcpAddr.IP.String(), uint(tcpAddr.Port)
}

func (s *testServer) executedCommands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

func (s *testServer) authCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authAttempts
}

func (s *testServer) serve(config *ssh.ServerConfig) {
	for {
		tcpConn, err := s.listener.Accept()
		if err != nil {
			return
		}

		go func() {
			sshConn, chans, reqs, err := ssh.NewServerConn(tcpConn, config)
			if err != nil {
				return
			}
			defer sshConn.Close()

			go ssh.DiscardRequests(reqs)

			for newChannel := range chans {
				if newChannel.ChannelType() != "session" {
					newChannel.Reject(ssh.UnknownChannelType, "unknown channel type")
					continue
				}

				channel, requests, err := newChannel.Accept()
				if err != nil {
					continue
				}

				go s.handleSession(channel, requests)
			}
		}()
	}
}

func (s *testServer) handleSession(channel ssh.Channel, requests <-chan *ssh.Request) {
	defer channel.Close()

	for req := range requests {
		if req.Type != "exec" {
			if req.WantReply {
				req.Reply(false, nil)
			}
			continue
		}

		var payload struct{ Command string }
		if err := ssh.Unmarshal(req.Payload, &payload); err != nil {
			req.Reply(false, nil)
			continue
		}
		req.Reply(true, nil)

		s.mu.Lock()
		s.commands = append(s.commands, payload.Command)
		s.mu.Unlock()

		exitCode := s.interpret(channel, payload.Command)

		status := struct{ Status uint32 }{uint32(exitCode)}
		channel.SendRequest("exit-status", false, ssh.Marshal(&status))
		return
	}
}

func (s *testServer) interpret(channel ssh.Channel, command string) int {
	switch {
	case command == "true":
		return 0
	case strings.HasPrefix(command, "exit "):
		code, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(command, "exit ")))
		if err != nil {
			return 1
		}
		return code
	case strings.HasPrefix(command, "echo "):
		fmt.Fprintf(channel, "%s\n", strings.TrimPrefix(command, "echo "))
		return 0
	default:
		return 0
	}
}

package api

import (
	"errors"
	"net"
	"net/http"
	"net/rpc"

	"github.com/tauraamui/photoframed/api/auth"
	"github.com/tauraamui/photoframed/pkg/slideshow"
)

type Options struct {
	RPCListenPort string
	SigningSecret string
}

// SlideshowServer exposes manual slideshow navigation over
// net/rpc; tray or remote clients authenticate with the signing
// secret and pass back the issued token per call.
type SlideshowServer struct {
	driver        *slideshow.Driver
	httpServer    *http.Server
	rpcListenPort string
	signingSecret string
}

func New(driver *slideshow.Driver, opts Options) *SlideshowServer {
	return &SlideshowServer{
		driver:        driver,
		httpServer:    &http.Server{},
		rpcListenPort: opts.RPCListenPort,
		signingSecret: opts.SigningSecret,
	}
}

func StartRPC(s *SlideshowServer) error {
	err := rpc.Register(s)
	if err != nil {
		return err
	}
	rpc.HandleHTTP()

	l, err := net.Listen("tcp", s.rpcListenPort)
	if err != nil {
		return err
	}

	errs := make(chan error)
	go func() {
		httpErr := s.httpServer.Serve(l)
		if httpErr != nil {
			errs <- httpErr
		}
		errs <- nil
	}()

	select {
	case err := <-errs:
		return err
	default:
		return nil
	}
}

func ShutdownRPC(s *SlideshowServer) error {
	if s != nil && s.httpServer != nil {
		return s.httpServer.Close()
	}
	return errors.New("API server not running")
}

// Authenticate exchanges the shared signing secret for a short
// lived session token.
func (s *SlideshowServer) Authenticate(secret string, resp *string) error {
	if secret != s.signingSecret {
		return errors.New("incorrect secret")
	}

	token, err := auth.GenToken(s.signingSecret, "remote")
	if err != nil {
		return err
	}

	*resp = token
	return nil
}

func (s *SlideshowServer) Next(token string, resp *int) error {
	if err := s.validate(token); err != nil {
		return err
	}
	s.driver.Next()
	*resp = s.driver.Index()
	return nil
}

func (s *SlideshowServer) Previous(token string, resp *int) error {
	if err := s.validate(token); err != nil {
		return err
	}
	s.driver.Previous()
	*resp = s.driver.Index()
	return nil
}

func (s *SlideshowServer) ShowNow(token string, resp *bool) error {
	if err := s.validate(token); err != nil {
		return err
	}
	s.driver.ShowNow()
	*resp = true
	return nil
}

func (s *SlideshowServer) SwitchOrientation(token string, resp *bool) error {
	if err := s.validate(token); err != nil {
		return err
	}
	s.driver.SwitchOrientation()
	*resp = true
	return nil
}

func (s *SlideshowServer) Stop(token string, resp *bool) error {
	if err := s.validate(token); err != nil {
		return err
	}
	s.driver.Stop()
	*resp = true
	return nil
}

func (s *SlideshowServer) validate(token string) error {
	_, err := auth.ValidateToken(s.signingSecret, token)
	return err
}

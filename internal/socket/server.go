package socket

import (
	"bufio"
	"encoding/json"
	"io"
	"net"
	"os"
	"sync"

	"github.com/boxmux/boxmux/internal/coordinator"
	"github.com/sirupsen/logrus"
)

// Server is the Unix-domain control endpoint of spec.md §4.7: one
// listener, any number of concurrent client connections, each reading
// newline-delimited Requests and writing one Response per Request back
// on the same connection. No unsolicited Events are written.
type Server struct {
	path   string
	coord  *coordinator.Coordinator
	log    *logrus.Entry
	ln     net.Listener
	wg     sync.WaitGroup
	closed chan struct{}
}

// New binds the control socket at path, removing any stale socket file
// left behind by a prior crashed run.
func New(path string, coord *coordinator.Coordinator, log *logrus.Entry) (*Server, error) {
	os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	os.Chmod(path, 0600)
	return &Server{path: path, coord: coord, log: log, ln: ln, closed: make(chan struct{})}, nil
}

// Serve accepts connections until Close is called.
func (s *Server) Serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			select {
			case <-s.closed:
				return
			default:
				s.log.WithError(err).Warn("socket: accept failed")
				return
			}
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

// Close stops accepting new connections, waits for in-flight ones to
// drain, and removes the socket file.
func (s *Server) Close() error {
	close(s.closed)
	err := s.ln.Close()
	s.wg.Wait()
	os.Remove(s.path)
	return err
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	reader := bufio.NewReader(conn)
	enc := json.NewEncoder(conn)

	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			s.dispatch(line, enc)
		}
		if err != nil {
			if err != io.EOF {
				s.log.WithError(err).Debug("socket: connection read error")
			}
			return
		}
	}
}

func (s *Server) dispatch(line []byte, enc *json.Encoder) {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		enc.Encode(Response{Success: false, Error: "malformed request", ErrorCode: string(coordinator.ErrSocketError)})
		return
	}
	if len(req) != 1 {
		enc.Encode(Response{Success: false, Error: "request must name exactly one command", ErrorCode: string(coordinator.ErrInvalidCommand)})
		return
	}

	for name, raw := range req {
		m, err := decodeCommand(name, raw)
		if err != nil {
			enc.Encode(Response{Success: false, Error: err.Error(), ErrorCode: string(coordinator.ErrInvalidCommand)})
			return
		}
		res := s.coord.Submit(m)
		enc.Encode(toResponse(res))
	}
}

func toResponse(res coordinator.Result) Response {
	if res.Err != nil {
		r := Response{Success: false, Error: res.Err.Error(), ErrorCode: string(coordinator.ErrExecutionError)}
		if ce, ok := res.Err.(*coordinator.CodedError); ok {
			r.ErrorCode = string(ce.Code)
		}
		return r
	}
	return Response{Success: true, Message: res.Message, Data: res.Data}
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"strconv"
	"strings"

	"github.com/flonle/patrie/cmd/patried/resp3"
)

// Session dispatches one connection's commands, grounded on diyredis's
// Session/doXXX split: HandleCommands reads and routes, each doXXX owns
// one command's argument checking and reply.
type Session struct {
	server *Server
	conn   net.Conn
	log    *log.Logger
}

func (s *Session) HandleCommands() {
	reader := bufio.NewReader(s.conn)
	for {
		cmd, err := ParseCommand(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			s.log.Println("error parsing RESP command:", err)
			s.conn.Write([]byte("-ERR Cannot parse RESP command\r\n"))
			continue
		}
		if len(cmd) == 0 {
			continue
		}

		switch strings.ToLower(cmd[0]) {
		case "ping":
			s.doPING(cmd)
		case "set":
			s.doSET(cmd)
		case "get":
			s.doGET(cmd)
		case "del":
			s.doDEL(cmd)
		case "match":
			s.doMATCH(cmd)
		case "matches":
			s.doMATCHES(cmd)
		case "keys":
			s.doKEYS(cmd)
		case "size":
			s.doSIZE(cmd)
		default:
			s.conn.Write([]byte("-ERR Command not known\r\n"))
		}
	}
}

func (s *Session) writeError(format string, args ...any) {
	s.conn.Write([]byte("-ERR " + fmt.Sprintf(format, args...) + "\r\n"))
}

func (s *Session) doPING(cmd []string) {
	s.conn.Write([]byte("+PONG\r\n"))
}

func (s *Session) doSET(cmd []string) {
	if len(cmd) != 3 {
		s.writeError("wrong number of arguments for SET")
		return
	}
	s.server.applySET([]byte(cmd[1]), cmd[2])
	s.server.appendLog(cmd)
	s.conn.Write([]byte("+OK\r\n"))
}

func (s *Session) doGET(cmd []string) {
	if len(cmd) != 2 {
		s.writeError("wrong number of arguments for GET")
		return
	}
	s.server.mu.RLock()
	value, ok := s.server.trie.Lookup([]byte(cmd[1]))
	s.server.mu.RUnlock()
	if !ok {
		s.conn.Write([]byte("$-1\r\n"))
		return
	}
	s.conn.Write(MakeBulkStr(value))
}

func (s *Session) doDEL(cmd []string) {
	if len(cmd) != 2 {
		s.writeError("wrong number of arguments for DEL")
		return
	}
	existed := s.server.applyDEL([]byte(cmd[1]))
	s.server.appendLog(cmd)
	if existed {
		s.conn.Write([]byte(":1\r\n"))
	} else {
		s.conn.Write([]byte(":0\r\n"))
	}
}

func (s *Session) doMATCH(cmd []string) {
	if len(cmd) != 2 {
		s.writeError("wrong number of arguments for MATCH")
		return
	}
	s.server.mu.RLock()
	value, leftover, found := s.server.trie.Match([]byte(cmd[1]))
	s.server.mu.RUnlock()
	if !found {
		s.conn.Write([]byte("$-1\r\n"))
		return
	}
	matched := cmd[1][:len(cmd[1])-len(leftover)]
	s.conn.Write(MakeArray([]any{matched, value}))
}

func (s *Session) doMATCHES(cmd []string) {
	if len(cmd) != 2 {
		s.writeError("wrong number of arguments for MATCHES")
		return
	}
	s.server.mu.RLock()
	encoder := resp3.Encoder{}
	var matches [][2]string
	for leftover, value := range s.server.trie.Matches([]byte(cmd[1])) {
		matched := cmd[1][:len(cmd[1])-len(leftover)]
		matches = append(matches, [2]string{matched, value})
	}
	s.server.mu.RUnlock()

	encoder.WriteArrHeader(len(matches))
	for _, m := range matches {
		encoder.WriteArrHeader(2)
		encoder.WriteBulkStr(m[0])
		encoder.WriteBulkStr(m[1])
	}
	s.conn.Write(encoder.Buf)
}

func (s *Session) doKEYS(cmd []string) {
	s.server.mu.RLock()
	var keys []string
	for k := range s.server.trie.Keys() {
		keys = append(keys, string(k))
	}
	s.server.mu.RUnlock()

	encoder := resp3.Encoder{}
	encoder.WriteArrHeader(len(keys))
	for _, k := range keys {
		encoder.WriteBulkStr(k)
	}
	s.conn.Write(encoder.Buf)
}

func (s *Session) doSIZE(cmd []string) {
	s.server.mu.RLock()
	n := s.server.trie.Size()
	s.server.mu.RUnlock()
	s.conn.Write([]byte(":" + strconv.Itoa(n) + "\r\n"))
}

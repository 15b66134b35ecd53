package communication

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"feud/utils"
)

// Status codes carried by every packet.
const (
	StatusOK   = 200
	StatusFail = 400
)

type Command string

const (
	Connected Command = "CONNECTED"
	Sync      Command = "SYNC"
	Swap      Command = "SWAP"
	Action    Command = "ACTION"
	Quit      Command = "QUIT"
	Error     Command = "ERROR"
)

var commands = []Command{Connected, Sync, Swap, Action, Quit, Error}

// MaxPayload bounds a single packet.
const MaxPayload = 64 * 1024

const separator = "-"

var ErrPacket = errors.New("malformed packet")

// Packet is one protocol message: "status:COMMAND - body" on the wire.
type Packet struct {
	Status  int
	Command Command
	Body    string
}

func OK(command Command, body string) Packet {
	return Packet{Status: StatusOK, Command: command, Body: body}
}

func Fail(command Command, body string) Packet {
	return Packet{Status: StatusFail, Command: command, Body: body}
}

func (p Packet) String() string {
	return fmt.Sprintf("%d:%s %s %s", p.Status, p.Command, separator, p.Body)
}

// ParsePacket decodes a payload. The body may be empty and may itself
// contain the separator.
func ParsePacket(payload string) (Packet, error) {
	status, rest, ok := strings.Cut(payload, ":")
	if !ok {
		return Packet{}, fmt.Errorf("%w: missing status in %q", ErrPacket, payload)
	}
	code, err := strconv.Atoi(strings.TrimSpace(status))
	if err != nil || (code != StatusOK && code != StatusFail) {
		return Packet{}, fmt.Errorf("%w: bad status %q", ErrPacket, status)
	}

	command, body, _ := strings.Cut(rest, separator)
	cmd := Command(strings.TrimSpace(command))
	if utils.FindIndex(commands, cmd) < 0 {
		return Packet{}, fmt.Errorf("%w: unknown command %q", ErrPacket, command)
	}
	return Packet{Status: code, Command: cmd, Body: strings.TrimSpace(body)}, nil
}

// WritePacket frames p with a 4-byte big-endian length header.
func WritePacket(w io.Writer, p Packet) error {
	payload := []byte(p.String())
	if len(payload) > MaxPayload {
		return fmt.Errorf("%w: payload of %d bytes exceeds %d", ErrPacket, len(payload), MaxPayload)
	}
	frame := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(frame, uint32(len(payload)))
	copy(frame[4:], payload)
	_, err := w.Write(frame)
	return err
}

func ReadPacket(r io.Reader) (Packet, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Packet{}, err
	}
	size := binary.BigEndian.Uint32(header[:])
	if size > MaxPayload {
		return Packet{}, fmt.Errorf("%w: payload of %d bytes exceeds %d", ErrPacket, size, MaxPayload)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Packet{}, err
	}
	return ParsePacket(string(payload))
}

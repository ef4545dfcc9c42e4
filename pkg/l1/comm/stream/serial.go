package stream

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/tarm/serial"
)

// DefaultBaud is used when the URL has no baud parameter.
const DefaultBaud = 115200

// SerialConfig parses serial:///dev/ttyUSB0?baud=115200.
func SerialConfig(serialURL string) (*serial.Config, error) {
	u, err := url.Parse(serialURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "serial" {
		return nil, fmt.Errorf("not a serial URL: %q", serialURL)
	}
	name := u.Path
	if u.Host != "" {
		name = u.Host + u.Path
	}
	if name == "" {
		return nil, fmt.Errorf("serial device required: %q", serialURL)
	}
	conf := &serial.Config{Name: name, Baud: DefaultBaud}
	if baud := u.Query().Get("baud"); baud != "" {
		if conf.Baud, err = strconv.Atoi(baud); err != nil || conf.Baud <= 0 {
			return nil, fmt.Errorf("invalid baud %q", baud)
		}
	}
	if timeout := u.Query().Get("timeout"); timeout != "" {
		if conf.ReadTimeout, err = time.ParseDuration(timeout); err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %v", timeout, err)
		}
	}
	return conf, nil
}

// OpenSerial opens a serial port as a packet stream.
func OpenSerial(serialURL string) (*ReadWriter, error) {
	conf, err := SerialConfig(serialURL)
	if err != nil {
		return nil, err
	}
	port, err := serial.OpenPort(conf)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v", conf.Name, err)
	}
	return New(port), nil
}

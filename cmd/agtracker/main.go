/*
agtracker translates binary messages of the Artemis Global Tracker.

Messages are decoded from local files, from a command line argument in hex
representation or from mail attachments on an IMAP server. The positions of
the decoded messages can be written to a GPX track file. In the other
direction, a message with a position, a timestamp and user function triggers
can be encoded and written to a file or sent to the tracker through the
RockBLOCK gateway.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mdzio/go-logging"
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/mdzio/go-agtracker/mailbox"
	"github.com/mdzio/go-agtracker/rockblock"
	"github.com/mdzio/go-agtracker/sbd"
	"github.com/mdzio/go-agtracker/tracklog"
)

var (
	log = logging.Get("main")

	logLevel = logging.InfoLevel
	decode   = flag.Bool("decode", false, "decode the messages given as file names, or as one hex string")
	useIMAP  = flag.Bool("imap", false, "decode messages from mail attachments instead of local files; the single argument is the config `file`")
	all      = flag.Bool("all", false, "retrieve all mails, not only unread ones; only relevant with -imap")
	output   = flag.String("output", "", "output `file`: GPX track for -decode, binary message for -encode")
	encode   = flag.Bool("encode", false, "encode a binary message")
	position = flag.String("position", "", "position as `lon,lat,alt`")
	timeSpec = flag.String("time", "", "UTC time in ISO format `YYYY-MM-DD HH:MM:SS`, or \"now\"")
	userfunc = flag.String("userfunc", "", "comma-separated user functions to trigger, each `slot` or slot:value")
	send     = flag.String("send", "", "send the encoded message to the device specified in the config `file`")
)

func init() {
	flag.Var(
		&logLevel,
		"log",
		"specifies the minimum `severity` of printed log messages: off, error, warning, info, debug or trace",
	)
}

func run() error {
	// parse command line
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage of agtracker:")
		flag.PrintDefaults()
	}
	// flag.Parse calls os.Exit(2) on error
	flag.Parse()
	// set log options
	logging.SetLevel(logLevel)

	switch {
	case *encode:
		return runEncode()
	case *decode:
		return runDecode(flag.Args())
	}
	return errors.New("Either -decode or -encode must be specified")
}

func runDecode(args []string) error {
	var points []*gpx.GPXPoint
	if *useIMAP {
		if len(args) != 1 {
			return errors.New("With -imap exactly one argument must be given: the config file")
		}
		cfg, err := loadConfig(args[0])
		if err != nil {
			return err
		}
		cln := &mailbox.Client{
			Addr:     cfg.Email.Host,
			User:     cfg.Email.User,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
		}
		msgs, err := cln.Messages(!*all)
		if err != nil {
			return err
		}
		for _, m := range msgs {
			fmt.Println(m)
			collectPoint(&points, m)
		}
	} else if len(args) == 1 && !isFile(args[0]) {
		// the argument is the hex representation of a binary message
		data, err := sbd.FromHex(args[0])
		if err != nil {
			return err
		}
		m, err := sbd.Decode(data)
		if err != nil {
			return err
		}
		fmt.Println(m)
		collectPoint(&points, m)
	} else {
		for _, name := range args {
			data, err := ioutil.ReadFile(name)
			if err != nil {
				log.Errorf("Reading %s failed: %v", name, err)
				continue
			}
			m, err := sbd.Decode(data)
			if err != nil {
				log.Errorf("Translating message %s failed: %v", name, err)
				continue
			}
			fmt.Println(name, m)
			collectPoint(&points, m)
		}
	}
	if *output != "" {
		log.Infof("Writing %s", *output)
		return tracklog.WriteFile(*output, points)
	}
	return nil
}

// collectPoint converts a message to a GPX track point, if GPX output is
// requested and the message contains a position.
func collectPoint(points *[]*gpx.GPXPoint, m *sbd.Message) {
	if *output == "" {
		return
	}
	p, err := tracklog.TrackPoint(m)
	if err != nil {
		log.Warningf("Skipping track point: %v", err)
		return
	}
	*points = append(*points, p)
}

func runEncode() error {
	m := sbd.NewMessage()
	if *position != "" {
		lon, lat, alt, err := parsePosition(*position)
		if err != nil {
			return err
		}
		if err := m.Set("LON", lon); err != nil {
			return err
		}
		if err := m.Set("LAT", lat); err != nil {
			return err
		}
		if err := m.Set("ALT", alt); err != nil {
			return err
		}
	}
	if *timeSpec != "" {
		t, err := parseTime(*timeSpec)
		if err != nil {
			return err
		}
		if err := m.Set("DATETIME", t); err != nil {
			return err
		}
	}
	if *userfunc != "" {
		if err := setUserFuncs(m, *userfunc); err != nil {
			return err
		}
	}

	buf, err := sbd.Encode(m)
	if err != nil {
		return err
	}
	if *output != "" {
		log.Infof("Writing %s", *output)
		if err := ioutil.WriteFile(*output, buf, 0644); err != nil {
			return err
		}
	} else {
		fmt.Println(sbd.ToHex(buf))
	}

	if *send != "" {
		cfg, err := loadConfig(*send)
		if err != nil {
			return err
		}
		if cfg.Device.IMEI == "" {
			return errors.New("No device IMEI in config file")
		}
		cln := &rockblock.Client{User: cfg.RockBLOCK.User, Password: cfg.RockBLOCK.Password}
		id, err := cln.Send(cfg.Device.IMEI, buf)
		if err != nil {
			return fmt.Errorf("Sending message failed: %w", err)
		}
		log.Infof("Message %s sent", id)
	}
	return nil
}

func parsePosition(s string) (lon, lat, alt float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("Invalid position (lon,lat,alt expected): %s", s)
	}
	vs := make([]float64, 3)
	for i, p := range parts {
		vs[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("Invalid position component: %s", p)
		}
	}
	return vs[0], vs[1], vs[2], nil
}

func parseTime(s string) (time.Time, error) {
	if s == "now" {
		return time.Now().UTC(), nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("Invalid time: %s", s)
}

// setUserFuncs parses the -userfunc option: a comma-separated list of user
// function slots. A bare slot number triggers the function (slots 1-4), a
// slot:value pair passes a numeric value (slots 5-8).
func setUserFuncs(m *sbd.Message, s string) error {
	for _, f := range strings.Split(s, ",") {
		name := "USERFUNC"
		if idx := strings.IndexByte(f, ':'); idx >= 0 {
			val, err := strconv.ParseFloat(f[idx+1:], 64)
			if err != nil {
				return fmt.Errorf("Invalid user function value: %s", f)
			}
			if err := m.Set(name+f[:idx], val); err != nil {
				return err
			}
		} else if err := m.Set(name+f, nil); err != nil {
			return err
		}
	}
	return nil
}

func isFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

func main() {
	err := run()
	// log fatal error
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	os.Exit(0)
}

// Package mailbox retrieves binary tracker messages from the attachments of
// gateway mails on an IMAP server.
package mailbox

import (
	"fmt"
	"io"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"github.com/mdzio/go-logging"
	"golang.org/x/net/html/charset"

	"github.com/mdzio/go-agtracker/sbd"
)

// DefaultFrom is the sender address filter for mails from the IRIDIUM
// gateway.
const DefaultFrom = "@rockblock.rock7.com"

var mbxLog = logging.Get("mailbox")

func init() {
	// gateway mails occasionally carry legacy charsets in their headers
	message.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		return charset.NewReaderLabel(label, input)
	}
}

// Client retrieves message attachments from an IMAP mailbox.
type Client struct {
	// Addr is the host:port of the IMAP server. The connection always uses
	// TLS.
	Addr     string
	User     string
	Password string
	// From filters mails by sender address. If empty, DefaultFrom is used.
	From string
}

// FetchAttachments queries the inbox for gateway mails and returns the raw
// content of all .sbd/.bin attachments. With unseenOnly only mails not read
// before are considered.
func (c *Client) FetchAttachments(unseenOnly bool) ([][]byte, error) {
	mbxLog.Debugf("Connecting to %s", c.Addr)
	cln, err := client.DialTLS(c.Addr, nil)
	if err != nil {
		return nil, fmt.Errorf("Connecting to %s failed: %w", c.Addr, err)
	}
	defer cln.Logout()
	if err := cln.Login(c.User, c.Password); err != nil {
		return nil, fmt.Errorf("Login of %s failed: %w", c.User, err)
	}
	if _, err := cln.Select("INBOX", false); err != nil {
		return nil, fmt.Errorf("Selecting inbox failed: %w", err)
	}

	from := c.From
	if from == "" {
		from = DefaultFrom
	}
	criteria := imap.NewSearchCriteria()
	criteria.Header.Add("From", from)
	if unseenOnly {
		criteria.WithoutFlags = []string{imap.SeenFlag}
	}
	ids, err := cln.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("Searching mails failed: %w", err)
	}
	mbxLog.Debugf("%d matching mails", len(ids))
	if len(ids) == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(ids...)
	section := &imap.BodySectionName{}
	msgs := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- cln.Fetch(seqset, []imap.FetchItem{section.FetchItem()}, msgs)
	}()

	var out [][]byte
	for msg := range msgs {
		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		atts, err := extractAttachments(body)
		if err != nil {
			mbxLog.Warningf("Reading mail %d failed: %v", msg.SeqNum, err)
			continue
		}
		out = append(out, atts...)
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("Fetching mails failed: %w", err)
	}
	return out, nil
}

// Messages fetches all attachments and decodes each one. A message that
// fails to decode is logged and skipped; the remaining messages are still
// returned.
func (c *Client) Messages(unseenOnly bool) ([]*sbd.Message, error) {
	atts, err := c.FetchAttachments(unseenOnly)
	if err != nil {
		return nil, err
	}
	msgs := make([]*sbd.Message, 0, len(atts))
	for i, att := range atts {
		m, err := sbd.Decode(att)
		if err != nil {
			mbxLog.Warningf("Translating message %d failed: %v", i, err)
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// extractAttachments walks the MIME parts of one mail and collects the
// content of all attachments with a recognized file extension.
func extractAttachments(r io.Reader) ([][]byte, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return nil, err
	}
	var out [][]byte
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, err
		}
		ah, ok := p.Header.(*mail.AttachmentHeader)
		if !ok {
			continue
		}
		filename, err := ah.Filename()
		if err != nil {
			filename = ""
		}
		ext := strings.ToLower(filepath.Ext(filename))
		if ext != ".sbd" && ext != ".bin" {
			mbxLog.Warningf("Unrecognized file extension of attachment: %s", filename)
			continue
		}
		data, err := ioutil.ReadAll(p.Body)
		if err != nil {
			return out, err
		}
		out = append(out, data)
	}
	return out, nil
}

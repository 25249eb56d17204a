package mailbox

import (
	"strings"
	"testing"

	"github.com/mdzio/go-lib/testutil"
	"github.com/stretchr/testify/assert"
)

const (
	// environment variables for integration tests against a live mailbox
	imapAddr     = "IMAP_ADDR"
	imapUser     = "IMAP_USER"
	imapPassword = "IMAP_PASSWORD"
)

const gatewayMail = `From: 300434060123450@rockblock.rock7.com
To: tracker@example.com
Subject: SBD Msg From Unit: 300434060123450
MIME-Version: 1.0
Content-Type: multipart/mixed; boundary="frontier"

--frontier
Content-Type: text/plain

MOMSN: 21, transmit time: 20-08-2022 06:30:04
--frontier
Content-Type: application/octet-stream; name="300434060123450_000021.sbd"
Content-Disposition: attachment; filename="300434060123450_000021.sbd"
Content-Transfer-Encoding: base64

AgMFBw==
--frontier
Content-Type: text/plain; name="notes.txt"
Content-Disposition: attachment; filename="notes.txt"

not a tracker message
--frontier--
`

func crlf(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}

func TestExtractAttachments(t *testing.T) {
	atts, err := extractAttachments(strings.NewReader(crlf(gatewayMail)))
	assert.NoError(t, err)
	// the .txt attachment must be skipped
	if assert.Len(t, atts, 1) {
		assert.Equal(t, []byte{0x02, 0x03, 0x05, 0x07}, atts[0])
	}
}

func TestExtractAttachmentsNoAttachment(t *testing.T) {
	plain := crlf(`From: someone@example.com
To: tracker@example.com
Subject: hello

no attachments here
`)
	atts, err := extractAttachments(strings.NewReader(plain))
	assert.NoError(t, err)
	assert.Empty(t, atts)
}

func TestFetchAttachmentsLive(t *testing.T) {
	c := &Client{
		Addr:     testutil.Config(t, imapAddr),
		User:     testutil.Config(t, imapUser),
		Password: testutil.Config(t, imapPassword),
	}
	atts, err := c.FetchAttachments(false)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("%d attachments fetched", len(atts))
}

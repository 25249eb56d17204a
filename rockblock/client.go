// Package rockblock sends mobile terminated (MT) messages to a tracker
// through the RockBLOCK gateway API.
package rockblock

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mdzio/go-logging"

	"github.com/mdzio/go-agtracker/sbd"
)

// DefaultURL is the MT endpoint of the RockBLOCK gateway.
const DefaultURL = "https://core.rock7.com/rockblock/MT"

// max. size of a valid response, if not specified: 64 KB
const responseSizeLimit = 64 * 1024

var clnLog = logging.Get("rockblock-client")

// APIError encapsulates a FAILED response of the gateway.
type APIError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("gateway fault (code: %d, message: %s)", e.Code, e.Message)
}

// Client provides access to the RockBLOCK gateway.
type Client struct {
	// URL of the MT endpoint. If empty, DefaultURL is used.
	URL string
	// RockBLOCK account credentials.
	User     string
	Password string

	ResponseSizeLimit int64
}

// Send transmits an encoded message to the device with the specified IMEI.
// The frame is rendered as its ASCII hex representation for the transport.
// On success the gateway's MT message ID is returned. A FAILED reply is
// returned as an *APIError.
func (c *Client) Send(imei string, data []byte) (string, error) {
	u := c.URL
	if u == "" {
		u = DefaultURL
	}
	clnLog.Debugf("Sending %d bytes to IMEI %s", len(data), imei)

	form := url.Values{
		"imei":     {imei},
		"data":     {sbd.ToHex(data)},
		"username": {c.User},
		"password": {c.Password},
	}
	httpResp, err := http.PostForm(u, form)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed on %s: %w", u, err)
	}
	defer httpResp.Body.Close()

	// check status
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 299 {
		return "", fmt.Errorf("HTTP request failed on %s with code: %s", u, httpResp.Status)
	}

	// read response
	limit := c.ResponseSizeLimit
	if limit == 0 {
		limit = responseSizeLimit
	}
	body, err := ioutil.ReadAll(&io.LimitedReader{R: httpResp.Body, N: limit})
	if err != nil {
		return "", fmt.Errorf("Reading of response failed on %s: %w", u, err)
	}
	return parseReply(string(body))
}

// parseReply parses the gateway reply: "OK,<id>" on success,
// "FAILED,<code>,<description>" on a rejected message.
func parseReply(reply string) (string, error) {
	clnLog.Tracef("Gateway reply: %s", reply)
	parts := strings.SplitN(strings.TrimSpace(reply), ",", 3)
	switch parts[0] {
	case "OK":
		if len(parts) < 2 {
			return "", fmt.Errorf("Unexpected gateway reply: %s", reply)
		}
		return parts[1], nil
	case "FAILED":
		if len(parts) < 3 {
			return "", fmt.Errorf("Unexpected gateway reply: %s", reply)
		}
		code, err := strconv.Atoi(parts[1])
		if err != nil {
			return "", fmt.Errorf("Unexpected gateway reply: %s", reply)
		}
		return "", &APIError{Code: code, Message: parts[2]}
	}
	return "", fmt.Errorf("Unexpected gateway reply: %s", reply)
}

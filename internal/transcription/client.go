package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"voice-scheduler-go/internal/logger"
)

// Client is the HTTP transcription provider: submit the audio reference, poll
// until the job settles, then download the transcript text.
type Client struct {
	Host       string
	HTTPClient *http.Client
}

type submitResponse struct {
	Code   int    `json:"Code"`
	Status string `json:"Status"`
	Data   struct {
		MediaId       string `json:"MediaId"`
		Status        string `json:"Status"`
		TranscriptURL string `json:"TranscriptionURL"`
	} `json:"Data"`
	Reason string `json:"Reason,omitempty"`
}

type statusResponse struct {
	Code   int    `json:"Code"`
	Status string `json:"Status"`
	Data   struct {
		Status        string `json:"Status"` // Success, Queued, Processing, Failed
		TranscriptURL string `json:"TranscriptionTextURL"`
	} `json:"Data"`
	Reason string `json:"Reason,omitempty"`
}

func NewClient(host string, timeout time.Duration) *Client {
	return &Client{
		Host:       strings.TrimRight(host, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Transcribe(ctx context.Context, audioRef string) (string, error) {
	log := logger.New().WithField("component", "transcription")
	if c.Host == "" {
		return "", fmt.Errorf("transcription host not configured")
	}
	log.WithField("audio_ref", audioRef).Info("starting transcription")

	mediaID, existingURL, err := c.submit(ctx, audioRef)
	if err != nil {
		return "", err
	}
	if existingURL != "" {
		log.WithField("existing_url", existingURL).Info("transcript already exists, downloading")
		return c.download(ctx, existingURL)
	}

	finalURL, err := c.poll(ctx, mediaID)
	if err != nil {
		return "", err
	}
	log.WithField("final_url", finalURL).Info("transcription complete, downloading text")
	return c.download(ctx, finalURL)
}

func (c *Client) submit(ctx context.Context, audioRef string) (string, string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	w.WriteField("callRecordingLink", audioRef)
	w.WriteField("callType", "PNS")
	_ = w.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", c.Host+"/transcribe", &b)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var resp submitResponse
	if err := c.doJSON(ctx, req, &resp); err != nil {
		return "", "", err
	}
	if resp.Code != 200 {
		return "", "", fmt.Errorf("transcribe submit error: code=%d reason=%s", resp.Code, resp.Reason)
	}
	if resp.Data.TranscriptURL != "" && strings.EqualFold(resp.Data.Status, "success") {
		return "", resp.Data.TranscriptURL, nil
	}
	return resp.Data.MediaId, "", nil
}

func (c *Client) poll(ctx context.Context, mediaID string) (string, error) {
	base := c.Host + "/getstatus"
	for i := 0; i < 40; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(1500 * time.Millisecond):
		}

		u, _ := url.Parse(base)
		q := u.Query()
		q.Set("mediaId", mediaID)
		u.RawQuery = q.Encode()

		req, _ := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
		var s statusResponse
		if err := c.doJSON(ctx, req, &s); err != nil {
			continue
		}
		switch s.Data.Status {
		case "Success":
			return s.Data.TranscriptURL, nil
		case "Queued", "Processing":
			continue
		case "Failed":
			return "", fmt.Errorf("transcription failed: %s", s.Reason)
		}
	}
	return "", fmt.Errorf("transcription timeout")
}

func (c *Client) download(ctx context.Context, textURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", textURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("transcript download failed: %s", string(b))
	}
	b, _ := io.ReadAll(resp.Body)
	return string(b), nil
}

func (c *Client) doJSON(ctx context.Context, req *http.Request, target any) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 12 * time.Second
	var lastErr error
	op := func() error {
		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %s", string(body))
			return lastErr
		}
		if len(body) == 0 {
			lastErr = fmt.Errorf("empty body")
			return lastErr
		}
		if err := json.Unmarshal(body, target); err != nil {
			lastErr = fmt.Errorf("json decode error: %v body=%s", err, string(body))
			return lastErr
		}
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return lastErr
	}
	return nil
}

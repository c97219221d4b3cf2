package reference

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Ashenafi-pixel/lotto-sphere/draw"

	"github.com/PuerkitoBio/goquery"
)

// Provider supplies a reference draw from somewhere outside the process.
type Provider interface {
	Fetch(ctx context.Context) (draw.Draw, error)
}

// LocalProvider generates the reference draw in-process.
type LocalProvider struct {
	Source draw.Source
}

func (p LocalProvider) Fetch(context.Context) (draw.Draw, error) {
	src := p.Source
	if src == nil {
		src = draw.NewCryptoSource()
	}
	return draw.Generate(src), nil
}

// HTTPProvider reads a draw from a URL. JSON bodies must look like
// {"whiteBalls":[...],"powerball":n}; HTML bodies are scanned for
// ".white-balls" and ".powerball" elements.
type HTTPProvider struct {
	url  string
	http *http.Client
}

func NewHTTPProvider(url string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPProvider{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

type drawPayload struct {
	WhiteBalls []int `json:"whiteBalls"`
	Powerball  int   `json:"powerball"`
}

func (p *HTTPProvider) Fetch(ctx context.Context) (draw.Draw, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return draw.Draw{}, err
	}
	req.Header.Set("Accept", "application/json, text/html;q=0.9")
	resp, err := p.http.Do(req)
	if err != nil {
		return draw.Draw{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return draw.Draw{}, fmt.Errorf("reference source: status %d", resp.StatusCode)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	var payload drawPayload
	if mediaType == "text/html" {
		payload, err = parseHTML(resp.Body)
	} else {
		err = json.NewDecoder(resp.Body).Decode(&payload)
	}
	if err != nil {
		return draw.Draw{}, fmt.Errorf("reference source: %w", err)
	}
	return draw.New(payload.WhiteBalls, payload.Powerball)
}

func parseHTML(r io.Reader) (drawPayload, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return drawPayload{}, err
	}
	var out drawPayload
	doc.Find(".white-balls").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		n, err := strconv.Atoi(strings.TrimSpace(s.Text()))
		if err != nil {
			return true
		}
		out.WhiteBalls = append(out.WhiteBalls, n)
		return len(out.WhiteBalls) < draw.PrimaryCount
	})
	pb := strings.TrimSpace(doc.Find(".powerball").First().Text())
	if pb == "" {
		return drawPayload{}, fmt.Errorf("no powerball element")
	}
	out.Powerball, err = strconv.Atoi(pb)
	if err != nil {
		return drawPayload{}, fmt.Errorf("powerball %q: %w", pb, err)
	}
	return out, nil
}

package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/tubeask/tubeask/internal/model"
	appErr "github.com/tubeask/tubeask/internal/pkg/errors"
)

const (
	defaultBaseURL       = "https://www.youtube.com"
	defaultFetchTimeout  = 10 * time.Second
	innertubePlayerPath  = "/youtubei/v1/player"
	androidClientName    = "ANDROID"
	androidClientVersion = "20.10.38"
	androidSDKVersion    = 30
	fallbackLanguageCode = "en"
)

// Client fetches timed transcript segments for a video through the
// innertube player endpoint and the timedtext caption feed.
type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: defaultBaseURL,
	}
}

type innertubeContext struct {
	Client struct {
		ClientName        string `json:"clientName"`
		ClientVersion     string `json:"clientVersion"`
		AndroidSDKVersion int    `json:"androidSdkVersion,omitempty"`
	} `json:"client"`
}

type playerRequest struct {
	Context innertubeContext `json:"context"`
	VideoID string           `json:"videoId"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions struct {
		Renderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type timedtextDoc struct {
	XMLName xml.Name       `xml:"transcript"`
	Texts   []timedtextRow `xml:"text"`
}

type timedtextRow struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Body  string  `xml:",chardata"`
}

// Fetch returns the ordered transcript segments for a video. The track is
// chosen by requested language, falling back to english, then to the first
// available track.
func (c *Client) Fetch(ctx context.Context, videoID string, language string) ([]model.Segment, error) {
	logger := logutil.GetLogger(ctx).With(zap.String("video_id", videoID))
	player, err := c.fetchPlayer(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fetch player: %w", err)
	}
	tracks := player.Captions.Renderer.CaptionTracks
	if len(tracks) == 0 {
		if player.PlayabilityStatus.Status != "" && player.PlayabilityStatus.Status != "OK" {
			return nil, fmt.Errorf("%w: %s", appErr.ErrTranscriptsDisabled, player.PlayabilityStatus.Status)
		}
		return nil, appErr.ErrTranscriptsDisabled
	}
	track := selectTrack(tracks, language)
	segments, err := c.fetchTimedtext(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, appErr.ErrTranscriptNotFound
	}
	logger.Info("transcript fetched",
		zap.String("language", track.LanguageCode),
		zap.Int("segments", len(segments)),
	)
	return segments, nil
}

func (c *Client) fetchPlayer(ctx context.Context, videoID string) (*playerResponse, error) {
	reqBody := playerRequest{VideoID: videoID}
	reqBody.Context.Client.ClientName = androidClientName
	reqBody.Context.Client.ClientVersion = androidClientVersion
	reqBody.Context.Client.AndroidSDKVersion = androidSDKVersion
	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+innertubePlayerPath, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("player request failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	var out playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) fetchTimedtext(ctx context.Context, trackURL string) ([]model.Segment, error) {
	if strings.HasPrefix(trackURL, "/") {
		trackURL = c.baseURL + trackURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext request failed: %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseTimedtext(body)
}

func parseTimedtext(data []byte) ([]model.Segment, error) {
	var doc timedtextDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse timedtext: %w", err)
	}
	segments := make([]model.Segment, 0, len(doc.Texts))
	for _, row := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(row.Body))
		if text == "" {
			continue
		}
		segments = append(segments, model.Segment{
			Text:     text,
			Start:    row.Start,
			Duration: row.Dur,
		})
	}
	return segments, nil
}

func selectTrack(tracks []captionTrack, language string) captionTrack {
	if language != "" {
		for _, track := range tracks {
			if strings.EqualFold(track.LanguageCode, language) {
				return track
			}
		}
	}
	for _, track := range tracks {
		if strings.EqualFold(track.LanguageCode, fallbackLanguageCode) {
			return track
		}
	}
	return tracks[0]
}

package actuator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// httpClient is a shared HTTP client with timeout so a wedged LED daemon
// can never stall the announcement pipeline for long.
var httpClient = &http.Client{
	Timeout: 500 * time.Millisecond,
}

// HTTPActuator drives one LED channel of a local LED daemon over its HTTP
// API. The daemon owns the GPIO/PWM hardware; the controller only speaks
// JSON to it. Errors are logged and swallowed: the actuator contract
// exposes no failure mode.
type HTTPActuator struct {
	baseURL string
	channel string
	logger  *slog.Logger
}

// NewHTTPActuator creates an actuator for the named LED channel, e.g.
// NewHTTPActuator("http://127.0.0.1:9090", "mouth", logger).
func NewHTTPActuator(baseURL, channel string, logger *slog.Logger) *HTTPActuator {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPActuator{baseURL: baseURL, channel: channel, logger: logger}
}

// SetBrightness posts a PWM level to the channel.
func (a *HTTPActuator) SetBrightness(level uint8) {
	a.post("brightness", map[string]any{"level": int(level)})
}

// SetDigital posts an on/off state to the channel.
func (a *HTTPActuator) SetDigital(on bool) {
	a.post("digital", map[string]any{"on": on})
}

func (a *HTTPActuator) post(kind string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		a.logger.Error("led daemon payload encode failed", "channel", a.channel, "err", err)
		return
	}

	url := fmt.Sprintf("%s/leds/%s/%s", a.baseURL, a.channel, kind)
	resp, err := httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		a.logger.Warn("led daemon unreachable", "channel", a.channel, "err", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		a.logger.Warn("led daemon rejected write",
			"channel", a.channel,
			"kind", kind,
			"status", resp.StatusCode,
		)
	}
}

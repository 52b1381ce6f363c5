package cambai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/buddybot/buddyvoice/internal/voice/vendors"
)

// Terminal task statuses reported by the vendor. Anything else means the
// job is still processing.
const (
	statusSuccess         = "SUCCESS"
	statusFailed          = "FAILED"
	statusTimeout         = "TIMEOUT"
	statusPaymentRequired = "PAYMENT_REQUIRED"
)

type submitRequest struct {
	Text     string `json:"text"`
	VoiceID  int    `json:"voice_id"`
	Language int    `json:"language"`
}

type submitResponse struct {
	TaskID string `json:"task_id"`
}

type taskStatusResponse struct {
	Status       string `json:"status"`
	RunID        string `json:"run_id"`
	ErrorMessage string `json:"error_message"`
}

// Synthesize runs one full submit/poll/retrieve cycle and returns the raw
// audio bytes. Failures are wrapped in the vendors sentinel errors so the
// pipeline can classify them.
func (c *Client) Synthesize(ctx context.Context, req vendors.SynthesisRequest) ([]byte, error) {
	taskID, err := c.submit(ctx, req)
	if err != nil {
		return nil, err
	}

	runID, err := c.poll(ctx, taskID)
	if err != nil {
		return nil, err
	}

	audio, err := c.doRaw(ctx, http.MethodGet, c.baseURL+"/tts-result/"+runID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vendors.ErrRetrieveFailed, err)
	}
	return audio, nil
}

func (c *Client) submit(ctx context.Context, req vendors.SynthesisRequest) (string, error) {
	body := submitRequest{
		Text:     req.Text,
		VoiceID:  req.VoiceID,
		Language: req.Language,
	}
	var resp submitResponse
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/tts", body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", vendors.ErrSubmitFailed, err)
	}
	if resp.TaskID == "" {
		return "", fmt.Errorf("%w: response carried no task_id", vendors.ErrSubmitFailed)
	}
	return resp.TaskID, nil
}

// poll waits on a task until it reaches a terminal status or the attempt
// budget runs out. The inter-poll delay starts at pollInitialDelay and
// grows by pollMultiplier per attempt, capped at pollMaxDelay.
func (c *Client) poll(ctx context.Context, taskID string) (string, error) {
	bo := c.newPollBackoff()

	statusURL := c.baseURL + "/tts/" + taskID

	for attempt := 0; attempt < c.pollMaxAttempts; attempt++ {
		if err := sleepCtx(ctx, bo.NextBackOff()); err != nil {
			return "", fmt.Errorf("%w: %v", vendors.ErrPollTimeout, err)
		}

		var status taskStatusResponse
		if err := c.doJSON(ctx, http.MethodGet, statusURL, nil, &status); err != nil {
			// A transport hiccup consumes the attempt but does not
			// abort the job.
			slog.WarnContext(ctx, "cambai poll attempt failed",
				slog.String("task_id", taskID),
				slog.Int("attempt", attempt+1),
				slog.String("error", err.Error()))
			continue
		}

		switch status.Status {
		case statusSuccess:
			if status.RunID == "" {
				return "", fmt.Errorf("%w: SUCCESS without run_id", vendors.ErrPollFailed)
			}
			return status.RunID, nil
		case statusFailed, statusTimeout, statusPaymentRequired:
			return "", fmt.Errorf("%w: status %s: %s",
				vendors.ErrPollFailed, status.Status, status.ErrorMessage)
		}
	}

	return "", fmt.Errorf("%w: task %s still processing after %d attempts",
		vendors.ErrPollTimeout, taskID, c.pollMaxAttempts)
}

// newPollBackoff builds the inter-poll delay schedule: pollInitialDelay
// growing by pollMultiplier per attempt, capped at pollMaxDelay, no jitter.
func (c *Client) newPollBackoff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.pollInitialDelay
	bo.Multiplier = pollMultiplier
	bo.MaxInterval = c.pollMaxDelay
	bo.RandomizationFactor = 0
	return bo
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

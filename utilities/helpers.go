package utilities

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DoJSONRequest performs an HTTP request, retries on transient errors, and unmarshals a JSON response.
func DoJSONRequest(client *http.Client, req *http.Request, maxRetries int, retryDelay time.Duration, result interface{}) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		r := req
		if attempt > 0 && req.GetBody != nil {
			bodyReader, err := req.GetBody()
			if err != nil {
				return fmt.Errorf("retry %d: could not reset request body: %w", attempt, err)
			}
			r = req.Clone(req.Context())
			r.Body = bodyReader
		}

		resp, err := client.Do(r)
		if err != nil {
			lastErr = err
			time.Sleep(retryDelay)
			continue
		}

		if resp.StatusCode >= 500 && resp.StatusCode <= 599 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error %d %s", resp.StatusCode, resp.Status)
			time.Sleep(retryDelay)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("http %d: %s", resp.StatusCode, string(snippet))
		}

		decodeErr := json.NewDecoder(resp.Body).Decode(result)
		resp.Body.Close()
		if decodeErr != nil {
			return fmt.Errorf("failed to decode JSON response: %w", decodeErr)
		}
		return nil
	}
	return fmt.Errorf("all retries failed: %w", lastErr)
}

// ParsePeakHours converts "9-12" style ranges into [start,end] hour pairs.
// Malformed ranges are reported, not silently dropped.
func ParsePeakHours(ranges []string) ([][2]int, error) {
	out := make([][2]int, 0, len(ranges))
	for _, r := range ranges {
		parts := strings.SplitN(r, "-", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid peak hour range %q", r)
		}
		start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		end, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("invalid peak hour range %q", r)
		}
		if start < 0 || end > 23 || start > end {
			return nil, fmt.Errorf("peak hour range %q out of bounds", r)
		}
		out = append(out, [2]int{start, end})
	}
	return out, nil
}

// IsPeakHour reports whether the given hour falls inside any parsed range.
// Range bounds are inclusive.
func IsPeakHour(hour int, ranges [][2]int) bool {
	for _, r := range ranges {
		if hour >= r[0] && hour <= r[1] {
			return true
		}
	}
	return false
}

// ClampFloat bounds v to [min, max].
func ClampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

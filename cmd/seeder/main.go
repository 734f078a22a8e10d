// Command seeder bulk-imports the course catalog from an upstream chrono
// deployment into a running chrono-search instance.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	var (
		source = flag.String("source", "https://www.chrono.crux-bphc.com/api", "upstream chrono API base URL")
		target = flag.String("target", "http://localhost:8080", "chrono-search base URL")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	client := &http.Client{Timeout: 30 * time.Second}

	ids, err := fetchCourseIDs(client, *source)
	if err != nil {
		logger.Fatal("Failed to list courses", zap.Error(err))
	}
	logger.Info("Fetched course list", zap.Int("count", len(ids)))

	var ok, skipped, failed int
	for _, id := range ids {
		doc, err := fetchCourse(client, *source, id)
		if err != nil {
			logger.Error("Failed to fetch course", zap.String("id", id), zap.Error(err))
			failed++
			continue
		}

		status, err := addCourse(client, *target, doc)
		switch {
		case err != nil:
			logger.Error("Failed to add course", zap.String("id", id), zap.Error(err))
			failed++
		case status == http.StatusConflict:
			skipped++
		case status >= 400:
			logger.Warn("Course rejected", zap.String("id", id), zap.Int("status", status))
			failed++
		default:
			ok++
		}
	}

	logger.Info("Seeding finished",
		zap.Int("added", ok),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)
}

func fetchCourseIDs(client *http.Client, base string) ([]string, error) {
	resp, err := client.Get(base + "/courses")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list courses: status %d", resp.StatusCode)
	}

	var list []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode course list: %w", err)
	}

	ids := make([]string, len(list))
	for i, c := range list {
		ids[i] = c.ID
	}
	return ids, nil
}

func fetchCourse(client *http.Client, base, id string) (json.RawMessage, error) {
	resp, err := client.Get(base + "/courses/" + id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch course: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func addCourse(client *http.Client, base string, doc json.RawMessage) (int, error) {
	resp, err := client.Post(base+"/course/add", "application/json", bytes.NewReader(doc))
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

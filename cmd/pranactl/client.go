package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

func newClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
}

func runReflect(apiURL, userID, text string, out io.Writer) error {
	resp, err := newClient(apiURL).R().
		SetBody(map[string]string{"text": text}).
		Post(fmt.Sprintf("/api/users/%s/reflections", userID))
	if err != nil {
		return err
	}
	return printResponse(resp, http.StatusCreated, out)
}

func runActivate(apiURL, userID, chakraIndex string, out io.Writer) error {
	resp, err := newClient(apiURL).R().
		SetBody(map[string]string{}).
		Post(fmt.Sprintf("/api/users/%s/chakras/%s/activate", userID, chakraIndex))
	if err != nil {
		return err
	}
	return printResponse(resp, http.StatusOK, out)
}

func runRecalibrate(apiURL, userID, text string, out io.Writer) error {
	resp, err := newClient(apiURL).R().
		SetBody(map[string]string{"reflectionText": text}).
		Post(fmt.Sprintf("/api/users/%s/recalibrations", userID))
	if err != nil {
		return err
	}
	return printResponse(resp, http.StatusOK, out)
}

func runProgress(apiURL, userID string, out io.Writer) error {
	resp, err := newClient(apiURL).R().
		Get(fmt.Sprintf("/api/users/%s/progress", userID))
	if err != nil {
		return err
	}
	return printResponse(resp, http.StatusOK, out)
}

func printResponse(resp *resty.Response, wantStatus int, out io.Writer) error {
	if resp.StatusCode() != wantStatus {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	_, err := fmt.Fprintln(out, resp.String())
	return err
}

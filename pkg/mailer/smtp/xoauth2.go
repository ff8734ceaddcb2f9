package smtp

import (
	"errors"
	"fmt"
	netsmtp "net/smtp"

	"golang.org/x/oauth2"
)

// xoauth2 implements the SASL XOAUTH2 mechanism used by Gmail and Office 365.
type xoauth2 struct {
	source   oauth2.TokenSource
	username string
}

// XOAUTH2 returns an smtp.Auth that fetches a fresh access token from
// source on every connection.
func XOAUTH2(username string, source oauth2.TokenSource) netsmtp.Auth {
	return &xoauth2{username: username, source: source}
}

func (a *xoauth2) Start(*netsmtp.ServerInfo) (string, []byte, error) {
	tok, err := a.source.Token()
	if err != nil {
		return "", nil, fmt.Errorf("smtp: xoauth2 token: %w", err)
	}
	resp := "user=" + a.username + "\x01auth=" + tok.Type() + " " + tok.AccessToken + "\x01\x01"
	return "XOAUTH2", []byte(resp), nil
}

// Next answers the server's error challenge with an empty response so the
// server can report the final status.
func (a *xoauth2) Next(fromServer []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}
	if len(fromServer) == 0 {
		return nil, errors.New("smtp: xoauth2 unexpected challenge")
	}
	return []byte{}, nil
}

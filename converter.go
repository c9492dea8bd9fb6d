package exporter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jaytaylor/html2text"
)

var ErrNoOutput = errors.New("converter did not produce any output")

const excludeFlag = "--exclude"

// CommandConverter pipes html through an external program, that writes
// markdown to stdout
type CommandConverter struct {
	Command string
	Args    []string
}

func (c *CommandConverter) Convert(ctx context.Context, html string, excludeSelectors []string) (markdown string, err error) {
	args := append([]string{}, c.Args...)
	for _, selector := range excludeSelectors {
		args = append(args, excludeFlag, selector)
	}
	cmd := exec.CommandContext(ctx, c.Command, args...)
	cmd.Stdin = strings.NewReader(html)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	errRun := cmd.Run()
	if errRun != nil {
		return "", fmt.Errorf("%s: %w: %s", c.Command, errRun, strings.TrimSpace(stderr.String()))
	}
	if strings.TrimSpace(stdout.String()) == "" {
		return "", ErrNoOutput
	}
	return stdout.String(), nil
}

// TextConverter converts in process, when there is no converter binary around
type TextConverter struct {
	PrettyTables bool
}

func (c *TextConverter) Convert(ctx context.Context, html string, excludeSelectors []string) (markdown string, err error) {
	if len(excludeSelectors) > 0 {
		doc, errDoc := goquery.NewDocumentFromReader(strings.NewReader(html))
		if errDoc != nil {
			return "", errDoc
		}
		for _, selector := range excludeSelectors {
			doc.Find(selector).Remove()
		}
		html, err = doc.Html()
		if err != nil {
			return "", err
		}
	}
	text, errText := html2text.FromString(html, html2text.Options{PrettyTables: c.PrettyTables})
	if errText != nil {
		return "", errText
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoOutput
	}
	return text, nil
}

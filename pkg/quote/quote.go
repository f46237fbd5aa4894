// Package quote fetches a short quotation for the terminal's quote command.
// Two remote sources are tried in order and a built-in list backs them up,
// so a response line always appears.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

// Quote is one fetched or built-in quotation.
type Quote struct {
	Content string
	Author  string
	Offline bool
}

// Source produces a quote. Implementations never fail; they fall back
// internally instead.
type Source interface {
	Fetch(ctx context.Context) Quote
}

const (
	defaultAdviceURL   = "https://api.adviceslip.com/advice"
	defaultQuotableURL = "https://api.quotable.io/random"
)

// Chain tries the advice API, then the quotable API, then the local list.
type Chain struct {
	Client      *http.Client
	AdviceURL   string
	QuotableURL string
}

// NewChain returns a Chain with the default endpoints and a 10s timeout.
func NewChain() *Chain {
	return &Chain{
		Client:      &http.Client{Timeout: 10 * time.Second},
		AdviceURL:   defaultAdviceURL,
		QuotableURL: defaultQuotableURL,
	}
}

// Fetch resolves the fallback chain. It always returns a quote.
func (c *Chain) Fetch(ctx context.Context) Quote {
	if q, err := c.advice(ctx); err == nil {
		return q
	}
	if q, err := c.quotable(ctx); err == nil {
		return q
	}
	return Local()
}

func (c *Chain) advice(ctx context.Context) (Quote, error) {
	var payload struct {
		Slip struct {
			Advice string `json:"advice"`
		} `json:"slip"`
	}
	if err := c.getJSON(ctx, c.AdviceURL, &payload); err != nil {
		return Quote{}, err
	}
	if payload.Slip.Advice == "" {
		return Quote{}, fmt.Errorf("quote: empty advice payload")
	}
	return Quote{Content: payload.Slip.Advice, Author: "Daily Wisdom"}, nil
}

func (c *Chain) quotable(ctx context.Context) (Quote, error) {
	var payload struct {
		Content string `json:"content"`
		Author  string `json:"author"`
	}
	if err := c.getJSON(ctx, c.QuotableURL, &payload); err != nil {
		return Quote{}, err
	}
	if payload.Content == "" {
		return Quote{}, fmt.Errorf("quote: empty quotable payload")
	}
	return Quote{Content: payload.Content, Author: payload.Author}, nil
}

func (c *Chain) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("quote: %s returned %s", url, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Local returns a random quote from the built-in list, flagged offline.
func Local() Quote {
	q := localQuotes[rand.Intn(len(localQuotes))]
	q.Offline = true
	return q
}

var localQuotes = []Quote{
	{Content: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
	{Content: "Innovation distinguishes between a leader and a follower.", Author: "Steve Jobs"},
	{Content: "Code is like humor. When you have to explain it, it's bad.", Author: "Cory House"},
	{Content: "First, solve the problem. Then, write the code.", Author: "John Johnson"},
	{Content: "Experience is the name everyone gives to their mistakes.", Author: "Oscar Wilde"},
	{Content: "In order to be irreplaceable, one must always be different.", Author: "Coco Chanel"},
	{Content: "Java is to JavaScript what car is to Carpet.", Author: "Chris Heilmann"},
	{Content: "Knowledge is power.", Author: "Francis Bacon"},
	{Content: "Sometimes it pays to stay in bed on Monday, rather than spending the rest of the week debugging Monday's code.", Author: "Dan Salomon"},
	{Content: "Perfection is achieved not when there is nothing more to add, but when there is nothing left to take away.", Author: "Antoine de Saint-Exupéry"},
	{Content: "Ruby is rubbish! PHP is phpantastic!", Author: "Nikita Popov"},
	{Content: "Code never lies, comments sometimes do.", Author: "Ron Jeffries"},
	{Content: "Simplicity is the ultimate sophistication.", Author: "Leonardo da Vinci"},
	{Content: "Programming isn't about what you know; it's about what you can figure out.", Author: "Chris Pine"},
	{Content: "The best error message is the one that never shows up.", Author: "Thomas Fuchs"},
}

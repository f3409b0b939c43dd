package provider

import (
	"bufio"
	"context"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// TrieProvider is an in-process stand-in for the generation service: a
// frequency-ranked prefix trie over known tokens. It exists for the CLI
// debug mode and for tests; its candidates carry no kind, documentation
// or detail, same as a minimal service would send.
type TrieProvider struct {
	trie       *patricia.Trie
	totalCount int
}

// NewTrieProvider returns an empty provider. Seed it with AddToken or
// LoadTokenFile.
func NewTrieProvider() *TrieProvider {
	return &TrieProvider{trie: patricia.NewTrie()}
}

// AddToken registers a completable token with a ranking frequency.
func (p *TrieProvider) AddToken(token string, frequency int) {
	p.trie.Insert(patricia.Prefix(token), frequency)
	p.totalCount++
}

// LoadTokenFile seeds the trie from a file of "token frequency" lines.
// Lines without a parsable frequency default to 1.
func (p *TrieProvider) LoadTokenFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		freq := 1
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil && n > 0 {
				freq = n
			}
		}
		p.AddToken(fields[0], freq)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	log.Debugf("Loaded %d tokens from %s", p.totalCount, path)
	return nil
}

// TokenCount returns the number of tokens loaded.
func (p *TrieProvider) TokenCount() int {
	return p.totalCount
}

// Complete extracts the identifier prefix ending at the cursor and walks
// the trie subtree under it, ranking matches by frequency.
func (p *TrieProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := identifierSuffix(req.Before)
	resp := &Response{OldPrefix: prefix}
	if prefix == "" {
		return resp, nil
	}

	type ranked struct {
		token string
		freq  int
	}
	var matches []ranked

	err := p.trie.VisitSubtree(patricia.Prefix(prefix), func(pf patricia.Prefix, item patricia.Item) error {
		token := string(pf)
		if token == prefix {
			return nil
		}
		freq, _ := item.(int)
		matches = append(matches, ranked{token: token, freq: freq})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].freq != matches[j].freq {
			return matches[i].freq > matches[j].freq
		}
		return matches[i].token < matches[j].token
	})

	limit := req.MaxResults
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	for _, m := range matches {
		resp.Results = append(resp.Results, Candidate{NewPrefix: m.token})
	}
	return resp, nil
}

// identifierSuffix returns the trailing run of identifier characters in s.
func identifierSuffix(s string) string {
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			i--
			continue
		}
		break
	}
	return s[i:]
}

// Package chat implements the scripted chat widget: a static keyword
// responder and per-visitor widget state.
package chat

import "strings"

// Rule maps a keyword to a canned reply. An Exact rule only answers input
// equal to its keyword, so short words like "hi" do not fire inside "this".
type Rule struct {
	Keyword string `yaml:"keyword"`
	Reply   string `yaml:"reply"`
	Exact   bool   `yaml:"exact"`
}

// Fallback answers any input containing one of its phrases. Fallbacks are
// consulted only after every rule missed.
type Fallback struct {
	Phrases []string `yaml:"phrases"`
	Reply   string   `yaml:"reply"`
}

// Responder resolves user input to a reply. It is immutable after
// construction and safe for concurrent use.
type Responder struct {
	rules     []Rule
	exact     map[string]string
	fallbacks []Fallback
	fallback  string
}

// NewResponder builds a responder. Keywords and phrases are matched
// case-insensitively; earlier rules win over later ones.
func NewResponder(rules []Rule, fallbacks []Fallback, defaultReply string) *Responder {
	r := &Responder{exact: make(map[string]string, len(rules)), fallback: defaultReply}
	for _, rule := range rules {
		kw := strings.ToLower(strings.TrimSpace(rule.Keyword))
		if kw == "" {
			continue
		}
		if !rule.Exact {
			r.rules = append(r.rules, Rule{Keyword: kw, Reply: rule.Reply})
		}
		if _, dup := r.exact[kw]; !dup {
			r.exact[kw] = rule.Reply
		}
	}
	for _, fb := range fallbacks {
		var phrases []string
		for _, p := range fb.Phrases {
			if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
				phrases = append(phrases, p)
			}
		}
		if len(phrases) > 0 {
			r.fallbacks = append(r.fallbacks, Fallback{Phrases: phrases, Reply: fb.Reply})
		}
	}
	return r
}

// Reply picks the answer for input. Resolution order, first hit wins:
//  1. the trimmed input equals a keyword
//  2. the input contains a non-exact keyword, in table order
//  3. the input contains a fallback phrase
//  4. the default reply
func (r *Responder) Reply(input string) string {
	text := strings.ToLower(strings.TrimSpace(input))
	if reply, ok := r.exact[text]; ok {
		return reply
	}
	for _, rule := range r.rules {
		if strings.Contains(text, rule.Keyword) {
			return rule.Reply
		}
	}
	for _, fb := range r.fallbacks {
		for _, p := range fb.Phrases {
			if strings.Contains(text, p) {
				return fb.Reply
			}
		}
	}
	return r.fallback
}

// DefaultRules is the reply table used when the site content has none.
func DefaultRules() []Rule {
	return []Rule{
		{Keyword: "skills", Reply: "I work mostly with Go, Docker, CI/CD pipelines, SQL and cloud infrastructure. The Skills section has the full list."},
		{Keyword: "project", Reply: "Check out the Projects section: terminal tools in Go, a recommendation engine and this site itself."},
		{Keyword: "experience", Reply: "The Experience section lists my recent roles and what I delivered in each."},
		{Keyword: "education", Reply: "I hold a Bachelor of Computer Science; details are in the Education section."},
		{Keyword: "resume", Reply: "You can request my resume through the contact form and I'll send it over."},
		{Keyword: "hire", Reply: "I'm open to new opportunities! Drop a message through the contact form."},
		{Keyword: "github", Reply: "My GitHub stats are on the page, and the profile link sits right below them."},
		{Keyword: "contact", Reply: "Use the contact form at the bottom of the page, or email me directly."},
		{Keyword: "email", Reply: "The contact form reaches my inbox; the address is listed in the Contact section."},
		{Keyword: "hi", Reply: "Hi there! 👋 Ask me about my skills, projects, experience or how to get in touch.", Exact: true},
		{Keyword: "hey", Reply: "Hey! Feel free to ask about projects, skills or contact details.", Exact: true},
		{Keyword: "hello", Reply: "Hello! 👋 What would you like to know about my work?"},
	}
}

// DefaultFallbacks are the broader phrase checks applied after the rules.
func DefaultFallbacks() []Fallback {
	return []Fallback{
		{Phrases: []string{"thank", "thx", "appreciate"}, Reply: "You're welcome! Anything else you'd like to know?"},
		{Phrases: []string{"bye", "goodbye", "see you"}, Reply: "Thanks for stopping by. Have a great day!"},
		{Phrases: []string{"how", "what", "why", "where", "when", "can you", "?"}, Reply: "Good question! I can tell you about my skills, projects, experience or how to reach me."},
	}
}

// DefaultReply answers anything no rule or fallback matched.
const DefaultReply = "I'm a simple assistant. Try asking about skills, projects, experience or contact info."

// NewDefaultResponder builds a responder from the built-in tables.
func NewDefaultResponder() *Responder {
	return NewResponder(DefaultRules(), DefaultFallbacks(), DefaultReply)
}

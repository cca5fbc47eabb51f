package view

import (
	"html/template"
	"strings"

	"github.com/folio/internal/content"
)

// SocialLink is a rendered profile link.
type SocialLink struct {
	Key   string
	Label string
	URL   string
}

// ContactItem is one line of the hero contact modal. URL is trusted since
// it is built here from a mailto: or tel: scheme.
type ContactItem struct {
	Key   string
	Label string
	Value string
	URL   template.URL
}

type iconAsset struct {
	Key   string
	Label string
	SVG   string
}

var (
	iconDefinitions = []iconAsset{
		{Key: "github", Label: "GitHub", SVG: `<svg viewBox="0 0 24 24" fill="currentColor" aria-hidden="true"><path d="M12 .297c-6.63 0-12 5.373-12 12 0 5.303 3.438 9.8 8.205 11.385.6.113.82-.258.82-.577 0-.285-.01-1.04-.015-2.04-3.338.724-4.042-1.61-4.042-1.61-.546-1.142-1.335-1.512-1.335-1.512-1.087-.744.084-.729.084-.729 1.205.084 1.838 1.236 1.838 1.236 1.07 1.835 2.809 1.305 3.495.998.108-.776.417-1.305.76-1.605-2.665-.3-5.466-1.332-5.466-5.93 0-1.31.465-2.38 1.235-3.22-.135-.303-.54-1.523.105-3.176 0 0 1.005-.322 3.3 1.23.96-.267 1.98-.399 3-.405 1.02.006 2.04.138 3 .405 2.28-1.552 3.285-1.23 3.285-1.23.645 1.653.24 2.873.12 3.176.765.84 1.23 1.91 1.23 3.22 0 4.61-2.805 5.625-5.475 5.92.42.36.81 1.096.81 2.22 0 1.606-.015 2.896-.015 3.286 0 .315.21.69.825.57C20.565 22.092 24 17.592 24 12.297c0-6.627-5.373-12-12-12"/></svg>`},
		{Key: "linkedin", Label: "LinkedIn", SVG: `<svg viewBox="0 0 24 24" fill="currentColor" aria-hidden="true"><path d="M20.447 20.452h-3.554v-5.569c0-1.328-.027-3.037-1.852-3.037-1.853 0-2.136 1.445-2.136 2.939v5.667H9.351V9h3.414v1.561h.046c.477-.9 1.637-1.85 3.37-1.85 3.601 0 4.267 2.37 4.267 5.455v6.286zM5.337 7.433a2.062 2.062 0 0 1-2.063-2.065 2.064 2.064 0 1 1 2.063 2.065zm1.782 13.019H3.555V9h3.564v11.452zM22.225 0H1.771C.792 0 0 .774 0 1.729v20.542C0 23.227.792 24 1.771 24h20.451C23.2 24 24 23.227 24 22.271V1.729C24 .774 23.2 0 22.222 0h.003z"/></svg>`},
		{Key: "twitter", Label: "X / Twitter", SVG: `<svg viewBox="0 0 24 24" fill="currentColor" aria-hidden="true"><path d="M18.901 1.153h3.68l-8.04 9.19L24 22.846h-7.406l-5.8-7.584-6.638 7.584H.474l8.6-9.83L0 1.154h7.594l5.243 6.932ZM17.61 20.644h2.039L6.486 3.24H4.298Z"/></svg>`},
		{Key: "instagram", Label: "Instagram", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" aria-hidden="true"><rect x="3" y="3" width="18" height="18" rx="5"/><circle cx="12" cy="12" r="4"/><circle cx="17.5" cy="6.5" r="1" fill="currentColor"/></svg>`},
		{Key: "email", Label: "Email", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M21.75 6.75v10.5a2.25 2.25 0 0 1-2.25 2.25h-15A2.25 2.25 0 0 1 2.25 17.25V6.75M21.75 6.75A2.25 2.25 0 0 0 19.5 4.5h-15A2.25 2.25 0 0 0 2.25 6.75v.243c0 .781.405 1.506 1.071 1.916l7.5 4.615a2.25 2.25 0 0 0 2.157 0l7.5-4.615a2.25 2.25 0 0 0 1.072-1.916V6.75"/></svg>`},
		{Key: "phone", Label: "Phone", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M2.25 6.75c0 8.284 6.716 15 15 15h2.25a2.25 2.25 0 0 0 2.25-2.25v-1.372c0-.516-.351-.966-.852-1.091l-4.423-1.106c-.44-.11-.902.055-1.173.417l-.97 1.293c-.282.376-.769.542-1.21.38a12.035 12.035 0 0 1-7.143-7.143c-.162-.441.004-.928.38-1.21l1.293-.97c.363-.271.527-.734.417-1.173L6.963 3.102a1.125 1.125 0 0 0-1.091-.852H4.5A2.25 2.25 0 0 0 2.25 4.5v2.25Z"/></svg>`},
		{Key: "location", Label: "Location", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M15 10.5a3 3 0 1 1-6 0 3 3 0 0 1 6 0Z"/><path d="M19.5 10.5c0 7.142-7.5 11.25-7.5 11.25S4.5 17.642 4.5 10.5a7.5 7.5 0 1 1 15 0Z"/></svg>`},
		{Key: "website", Label: "Website", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M12 21c4.193 0 7.716-2.867 8.716-6.747M12 21c-4.193 0-7.716-2.867-8.716-6.747M12 21c2.485 0 4.5-4.03 4.5-9s-2.015-9-4.5-9m0 18c-2.485 0-4.5-4.03-4.5-9s2.015-9 4.5-9m0 0c3.365 0 6.299 1.847 7.843 4.582M12 3c-3.365 0-6.299 1.847-7.843 4.582m15.686 0c.737 1.305 1.157 2.812 1.157 4.418 0 .778-.099 1.533-.284 2.253m-.873 4.836C18.133 15.685 15.162 16.5 12 16.5s-6.134-.815-8.716-2.247m0 0A8.948 8.948 0 0 1 3 12c0-1.605.42-3.112 1.157-4.417"/></svg>`},
	}
	defaultIcon = iconAsset{Key: "default", Label: "Link", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M13.19 8.688a4.5 4.5 0 0 1 1.242 7.244l-4.5 4.5a4.5 4.5 0 0 1-6.364-6.364l1.757-1.757m13.35-.622 1.757-1.757a4.5 4.5 0 0 0-6.364-6.364l-4.5 4.5a4.5 4.5 0 0 0 1.242 7.244"/></svg>`}
	iconLookup  = func() map[string]iconAsset {
		lookup := make(map[string]iconAsset, len(iconDefinitions)+1)
		for _, icon := range iconDefinitions {
			lookup[icon.Key] = icon
		}
		lookup[defaultIcon.Key] = defaultIcon
		return lookup
	}()
)

func lookupIcon(key string) iconAsset {
	if icon, ok := iconLookup[strings.ToLower(strings.TrimSpace(key))]; ok {
		return icon
	}
	return defaultIcon
}

// IconSVG resolves the inline SVG for a key, falling back to a generic
// link icon.
func IconSVG(key string) template.HTML {
	return template.HTML(lookupIcon(key).SVG)
}

// HasIcon reports whether key names a known icon rather than the fallback.
func HasIcon(key string) bool {
	normalized := strings.ToLower(strings.TrimSpace(key))
	_, ok := iconLookup[normalized]
	return ok && normalized != defaultIcon.Key
}

// IconLabel returns the accessible label for a key.
func IconLabel(key string) string {
	return lookupIcon(key).Label
}

// SocialLinks lists the non-empty profile links in a fixed order.
func SocialLinks(links content.SocialLinks) []SocialLink {
	candidates := []struct{ key, url string }{
		{"github", links.GitHub},
		{"linkedin", links.LinkedIn},
		{"twitter", links.Twitter},
		{"instagram", links.Instagram},
	}
	var out []SocialLink
	for _, c := range candidates {
		if url := strings.TrimSpace(c.url); url != "" {
			out = append(out, SocialLink{Key: c.key, Label: IconLabel(c.key), URL: url})
		}
	}
	return out
}

// ContactItems lists the hero contact details that are set.
func ContactItems(info content.PersonalInfo) []ContactItem {
	var out []ContactItem
	if email := strings.TrimSpace(info.Email); email != "" {
		out = append(out, ContactItem{Key: "email", Label: "Email", Value: email, URL: template.URL("mailto:" + email)})
	}
	if phone := strings.TrimSpace(info.Phone); phone != "" {
		out = append(out, ContactItem{Key: "phone", Label: "Phone", Value: phone, URL: template.URL("tel:" + strings.ReplaceAll(phone, " ", ""))})
	}
	if location := strings.TrimSpace(info.Location); location != "" {
		out = append(out, ContactItem{Key: "location", Label: "Location", Value: location})
	}
	return out
}

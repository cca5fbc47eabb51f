package service

import (
	"github.com/folio/internal/content"
)

// CardView is a card plus its per-view reveal flag.
type CardView struct {
	content.Card
	Revealed bool
}

// TabView is a tab button of a tabbed section.
type TabView struct {
	ID     string
	Label  string
	Active bool
}

// SectionView is a render snapshot of one section, taken under the mount
// lock and safe to use after it is released.
type SectionView struct {
	MountID    string
	ID         string
	Title      string
	Intro      string
	Threshold  float64
	Tabs       []TabView
	ActiveTab  string
	Cards      []CardView
	Offset     int
	Total      int
	Page       int
	TotalPages int
	Paged      bool
	HasPrev    bool
	HasNext    bool
	Compact    bool
	ShowAll    bool
	CanToggle  bool
	Animating  bool
	HasModal   bool
	Selected   *content.Card
}

// ContactView is a render snapshot of the hero contact modal.
type ContactView struct {
	MountID string
	Open    bool
	Info    content.PersonalInfo
}

func (m *Mount) view(s *sectionState) SectionView {
	v := SectionView{
		MountID:    m.ID,
		ID:         s.def.ID,
		Title:      s.def.Title,
		Intro:      s.def.Intro,
		Threshold:  s.reveal.Threshold(),
		ActiveTab:  s.activeTab,
		Offset:     s.pager.Offset(),
		Total:      s.pager.Len(),
		Page:       s.pager.Page(),
		TotalPages: s.pager.TotalPages(),
		Paged:      !s.pager.Compact() && s.pager.Paged(),
		HasPrev:    s.pager.HasPrev(),
		HasNext:    s.pager.HasNext(),
		Compact:    s.pager.Compact(),
		ShowAll:    s.pager.ShowAll(),
		CanToggle:  s.pager.CanToggle(),
		Animating:  s.pager.IsAnimating(),
		HasModal:   s.def.Modal,
	}

	if len(s.tabs) > 1 {
		for _, t := range s.tabs {
			v.Tabs = append(v.Tabs, TabView{ID: t.ID, Label: t.Label, Active: t.ID == s.activeTab})
		}
	}

	for _, card := range s.pager.Visible() {
		v.Cards = append(v.Cards, CardView{Card: card, Revealed: s.reveal.Revealed(card.Key)})
	}

	if selected, ok := s.modal.Selected(); ok {
		v.Selected = &selected
	}
	return v
}

func (m *Mount) contactView() ContactView {
	info, open := m.contact.Selected()
	return ContactView{MountID: m.ID, Open: open, Info: info}
}

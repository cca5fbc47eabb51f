package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/folio/internal/content"
	"github.com/folio/internal/ui"
)

var (
	ErrMountNotFound   = errors.New("page view not found or expired")
	ErrSectionNotFound = errors.New("section not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrTabNotFound     = errors.New("tab not found")
)

// RevealFunc receives every first-time reveal of a card in a page view.
type RevealFunc func(visitorID, section, itemKey string)

// sectionState is the per-section interactive state of one page view.
type sectionState struct {
	def       content.SectionDef
	tabs      []content.Tab
	activeTab string
	pager     *ui.Pager[content.Card]
	reveal    *ui.RevealController[string]
	modal     ui.Modal[content.Card]
}

func (s *sectionState) syncReveal() {
	visible := s.pager.Visible()
	handles := make([]*ui.Handle[string], 0, len(visible))
	for _, card := range visible {
		handles = append(handles, ui.NewHandle(card.Key))
	}
	s.reveal.Sync(handles...)
}

func (s *sectionState) close() {
	s.pager.Close()
	s.reveal.Teardown()
	s.modal.Close()
}

// Mount is one rendered page view. Every method serializes on the mount's
// lock, so the events of one view run one at a time in arrival order.
type Mount struct {
	ID        string
	VisitorID string
	Library   *content.Library
	CreatedAt time.Time

	mu        sync.Mutex
	viewport  ui.Viewport
	compact   bool
	supported bool
	lastSeen  time.Time
	closed    bool
	order     []string
	sections  map[string]*sectionState
	contact   ui.Modal[content.PersonalInfo]
	onReveal  RevealFunc
}

func newMount(id, visitorID string, lib *content.Library, opts RegistryOptions, now time.Time) *Mount {
	m := &Mount{
		ID:        id,
		VisitorID: visitorID,
		Library:   lib,
		CreatedAt: now,
		viewport:  opts.Viewport,
		supported: true,
		lastSeen:  now,
		sections:  make(map[string]*sectionState),
		onReveal:  opts.OnReveal,
	}

	for _, def := range lib.Sections() {
		def := def
		tabs := lib.Tabs(def.ID)
		cards, _ := lib.Cards(def.ID, "")

		state := &sectionState{
			def:       def,
			tabs:      tabs,
			activeTab: tabs[0].ID,
			pager: ui.NewPager(cards, ui.PagerOptions{
				PageSize:     def.PageSize,
				InitialCount: def.InitialCount,
				Cooldown:     opts.Cooldown,
				Now:          opts.Now,
			}),
			reveal: ui.NewRevealController[string](def.Threshold, nil),
		}
		state.syncReveal()

		m.order = append(m.order, def.ID)
		m.sections[def.ID] = state
	}
	return m
}

func (m *Mount) section(id string) (*sectionState, error) {
	if m.closed {
		return nil, ErrMountNotFound
	}
	s, ok := m.sections[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, id)
	}
	return s, nil
}

func (m *Mount) touch(now time.Time) {
	m.mu.Lock()
	m.lastSeen = now
	m.mu.Unlock()
}

func (m *Mount) idleSince() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSeen
}

// Compact reports whether the view is in the compact layout.
func (m *Mount) Compact() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.compact
}

// SectionIDs returns the ids of the rendered sections in page order.
func (m *Mount) SectionIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Sections snapshots every section.
func (m *Mount) Sections() []SectionView {
	m.mu.Lock()
	defer m.mu.Unlock()
	views := make([]SectionView, 0, len(m.order))
	for _, id := range m.order {
		views = append(views, m.view(m.sections[id]))
	}
	return views
}

// Section snapshots one section.
func (m *Mount) Section(id string) (SectionView, error) {
	return m.apply(id, func(*sectionState) error { return nil })
}

func (m *Mount) apply(id string, fn func(*sectionState) error) (SectionView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.section(id)
	if err != nil {
		return SectionView{}, err
	}
	if err := fn(s); err != nil {
		return SectionView{}, err
	}
	return m.view(s), nil
}

// SetViewport applies the reported viewport width and intersection support.
// It returns true when the layout mode changed; every paged section is then
// back on its first page with show-all off.
func (m *Mount) SetViewport(width int, observerSupported bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false, ErrMountNotFound
	}

	if observerSupported != m.supported {
		m.supported = observerSupported
		for _, s := range m.sections {
			s.reveal.SetSupported(observerSupported)
		}
	}

	compact := m.viewport.IsCompact(width)
	if compact == m.compact {
		return false, nil
	}
	m.compact = compact
	for _, s := range m.sections {
		s.pager.SetCompact(compact)
		s.syncReveal()
	}
	return true, nil
}

// NextPage advances a section one page.
func (m *Mount) NextPage(section string) (SectionView, error) {
	return m.apply(section, func(s *sectionState) error {
		if s.pager.NextPage() {
			s.syncReveal()
		}
		return nil
	})
}

// PrevPage moves a section back one page.
func (m *Mount) PrevPage(section string) (SectionView, error) {
	return m.apply(section, func(s *sectionState) error {
		if s.pager.PrevPage() {
			s.syncReveal()
		}
		return nil
	})
}

// ToggleShowAll flips the compact show-all state of a section.
func (m *Mount) ToggleShowAll(section string) (SectionView, error) {
	return m.apply(section, func(s *sectionState) error {
		if !s.pager.Compact() {
			return nil
		}
		s.pager.ToggleShowAll()
		s.syncReveal()
		return nil
	})
}

// SwitchTab replaces the collection of a tabbed section.
func (m *Mount) SwitchTab(section, tab string) (SectionView, error) {
	return m.apply(section, func(s *sectionState) error {
		if tab == s.activeTab {
			return nil
		}
		for _, t := range s.tabs {
			if t.ID == tab {
				s.activeTab = t.ID
				s.modal.Close()
				s.pager.SetItems(t.Cards)
				s.syncReveal()
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrTabNotFound, tab)
	})
}

// Reveal feeds an intersection event for a card. It reports whether the
// event revealed the card. The reveal callback runs after the lock is
// released.
func (m *Mount) Reveal(section, key string, ratio float64) (bool, error) {
	m.mu.Lock()
	s, err := m.section(section)
	if err != nil {
		m.mu.Unlock()
		return false, err
	}
	revealed := s.reveal.Intersect(key, ratio)
	m.mu.Unlock()

	if revealed && m.onReveal != nil {
		m.onReveal(m.VisitorID, section, key)
	}
	return revealed, nil
}

// OpenItem selects a visible-collection card for the section modal.
func (m *Mount) OpenItem(section, key string) (SectionView, error) {
	return m.apply(section, func(s *sectionState) error {
		for _, t := range s.tabs {
			if t.ID != s.activeTab {
				continue
			}
			for _, card := range t.Cards {
				if card.Key == key {
					s.modal.Open(card)
					return nil
				}
			}
		}
		return fmt.Errorf("%w: %s/%s", ErrItemNotFound, section, key)
	})
}

// CloseItem clears the section modal.
func (m *Mount) CloseItem(section string) (SectionView, error) {
	return m.apply(section, func(s *sectionState) error {
		s.modal.Close()
		return nil
	})
}

// OpenContact shows the hero contact modal.
func (m *Mount) OpenContact() (ContactView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ContactView{}, ErrMountNotFound
	}
	m.contact.Open(m.Library.Hero.PersonalInfo)
	return m.contactView(), nil
}

// CloseContact hides the hero contact modal.
func (m *Mount) CloseContact() (ContactView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ContactView{}, ErrMountNotFound
	}
	m.contact.Close()
	return m.contactView(), nil
}

// Contact snapshots the hero contact modal.
func (m *Mount) Contact() ContactView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.contactView()
}

// Close tears every section down. Later events on the mount fail with
// ErrMountNotFound.
func (m *Mount) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for _, s := range m.sections {
		s.close()
	}
	m.contact.Close()
}

// Closed reports whether the mount was torn down.
func (m *Mount) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

package handler

import (
	"net/http"

	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

func (a *API) mount(c *gin.Context) (*service.Mount, bool) {
	m, err := a.mounts.Get(c.Param("view"))
	if err != nil {
		respondGone(c)
		return nil, false
	}
	return m, true
}

func (a *API) renderSection(c *gin.Context, v service.SectionView, err error) {
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.HTML(http.StatusOK, "section.html", gin.H{"section": v})
}

func (a *API) renderModal(c *gin.Context, v service.SectionView, err error) {
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.HTML(http.StatusOK, "modal.html", gin.H{"section": v})
}

func (a *API) renderContact(c *gin.Context, v service.ContactView, err error) {
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.HTML(http.StatusOK, "contact.html", gin.H{"contact": v})
}

// GetSection re-renders one section of a page view.
func (a *API) GetSection(c *gin.Context) {
	m, ok := a.mount(c)
	if !ok {
		return
	}
	v, err := m.Section(c.Param("section"))
	a.renderSection(c, v, err)
}

// NextPage advances a section one page.
func (a *API) NextPage(c *gin.Context) {
	m, ok := a.mount(c)
	if !ok {
		return
	}
	v, err := m.NextPage(c.Param("section"))
	a.renderSection(c, v, err)
}

// PrevPage moves a section back one page.
func (a *API) PrevPage(c *gin.Context) {
	m, ok := a.mount(c)
	if !ok {
		return
	}
	v, err := m.PrevPage(c.Param("section"))
	a.renderSection(c, v, err)
}

// ToggleShowAll flips the compact show-all state of a section.
func (a *API) ToggleShowAll(c *gin.Context) {
	m, ok := a.mount(c)
	if !ok {
		return
	}
	v, err := m.ToggleShowAll(c.Param("section"))
	a.renderSection(c, v, err)
}

// SwitchTab switches the collection of a tabbed section.
func (a *API) SwitchTab(c *gin.Context) {
	m, ok := a.mount(c)
	if !ok {
		return
	}
	v, err := m.SwitchTab(c.Param("section"), c.Param("tab"))
	a.renderSection(c, v, err)
}

// Reveal handles an intersection event. A reveal answers with the card in
// its revealed state; anything else answers 204 so nothing is swapped.
func (a *API) Reveal(c *gin.Context) {
	m, ok := a.mount(c)
	if !ok {
		return
	}
	section, key := c.Param("section"), c.Param("key")

	revealed, err := m.Reveal(section, key, parseRatio(c.PostForm("ratio")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !revealed {
		c.Status(http.StatusNoContent)
		return
	}

	v, err := m.Section(section)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	for _, card := range v.Cards {
		if card.Key == key {
			c.HTML(http.StatusOK, "card.html", gin.H{"section": v, "card": card})
			return
		}
	}
	c.Status(http.StatusNoContent)
}

// OpenItem shows the detail modal of a card.
func (a *API) OpenItem(c *gin.Context) {
	m, ok := a.mount(c)
	if !ok {
		return
	}
	v, err := m.OpenItem(c.Param("section"), c.Param("key"))
	a.renderModal(c, v, err)
}

// CloseItem hides the detail modal of a section.
func (a *API) CloseItem(c *gin.Context) {
	m, ok := a.mount(c)
	if !ok {
		return
	}
	v, err := m.CloseItem(c.Param("section"))
	a.renderModal(c, v, err)
}

// OpenContact shows the hero contact modal.
func (a *API) OpenContact(c *gin.Context) {
	m, ok := a.mount(c)
	if !ok {
		return
	}
	v, err := m.OpenContact()
	a.renderContact(c, v, err)
}

// CloseContact hides the hero contact modal.
func (a *API) CloseContact(c *gin.Context) {
	m, ok := a.mount(c)
	if !ok {
		return
	}
	v, err := m.CloseContact()
	a.renderContact(c, v, err)
}

// UpdateViewport applies the client's width and observer support. When the
// layout mode flips, every paged section is re-rendered out of band.
func (a *API) UpdateViewport(c *gin.Context) {
	m, ok := a.mount(c)
	if !ok {
		return
	}

	width := parseNonNegativeInt(c.PostForm("width"))
	observer := parseBool(c.PostForm("observer"), true)

	changed, err := m.SetViewport(width, observer)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !changed && observer {
		c.Status(http.StatusNoContent)
		return
	}
	c.HTML(http.StatusOK, "sections_oob.html", gin.H{"sections": m.Sections()})
}

// Teardown unmounts a page view. It always answers 204 since beacons
// ignore the response.
func (a *API) Teardown(c *gin.Context) {
	a.mounts.Teardown(c.Param("view"))
	c.Status(http.StatusNoContent)
}

package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/charmbracelet/bubbles/list"

	"concierge-chat/internal/locale"
)

// LocaleSelected is sent when the guest picks a language.
type LocaleSelected struct {
	Code string
}

// LocalePickerClosed is sent when the picker is dismissed without a choice.
type LocalePickerClosed struct{}

type localeItem struct {
	code locale.Locale
}

func (i localeItem) Title() string       { return locale.StringsFor(i.code).DisplayName }
func (i localeItem) Description() string { return string(i.code) }
func (i localeItem) FilterValue() string { return locale.StringsFor(i.code).DisplayName }

// LocalePickerModel is the language switcher overlay foreground.
type LocalePickerModel struct {
	list    list.Model
	visible bool
	width   int
	height  int
}

func NewLocalePickerModel(current locale.Locale) LocalePickerModel {
	supported := locale.Supported()
	items := make([]list.Item, len(supported))
	selected := 0
	for i, code := range supported {
		items[i] = localeItem{code: code}
		if code == current {
			selected = i
		}
	}

	l := list.New(items, CreateThemedDelegate(), 36, 14)
	l.Title = "Language / Idioma / Langue"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	ConfigureListStyles(&l)
	l.Select(selected)

	return LocalePickerModel{list: l}
}

func (m LocalePickerModel) Init() tea.Cmd {
	return nil
}

func (m LocalePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return LocalePickerClosed{} }

		case "enter":
			selectedItem := m.list.SelectedItem()
			if selectedItem == nil {
				return m, nil
			}
			code := selectedItem.(localeItem).code
			return m, func() tea.Msg {
				return LocaleSelected{Code: string(code)}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m LocalePickerModel) View() string {
	return LocalePickerBorderStyle.Render(m.list.View())
}

func (m *LocalePickerModel) Show() {
	m.visible = true
}

func (m *LocalePickerModel) Hide() {
	m.visible = false
}

func (m *LocalePickerModel) IsVisible() bool {
	return m.visible
}

func (m *LocalePickerModel) UpdateSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *LocalePickerModel) UpdatePicker(msg tea.Msg) tea.Cmd {
	if !m.visible {
		return nil
	}

	var cmd tea.Cmd
	var mdl tea.Model
	mdl, cmd = m.Update(msg)
	*m = mdl.(LocalePickerModel)
	return cmd
}

// RenderOverlay draws the picker centered over the background view.
func (m LocalePickerModel) RenderOverlay(backgroundView string) string {
	if !m.visible {
		return backgroundView
	}

	overlayModel := overlay.New(
		m,
		&staticViewModel{content: backgroundView},
		overlay.Center, // horizontal position
		overlay.Center, // vertical position
		0,              // x offset
		0,              // y offset
	)

	return overlayModel.View()
}

// staticViewModel is a simple model that renders static content (background)
type staticViewModel struct {
	content string
}

func (m staticViewModel) Init() tea.Cmd {
	return nil
}

func (m staticViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

func (m staticViewModel) View() string {
	return m.content
}

package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"concierge-chat/internal/conversation"
	"concierge-chat/internal/locale"
	"concierge-chat/internal/logging"
)

const (
	titleHeight    = 4
	textareaHeight = 5
	helpHeight     = 2
	padding        = 2
)

// SendState is the submission state machine. While Sending the input is
// disabled, so at most one request is ever in flight.
type SendState int

const (
	StateIdle SendState = iota
	StateSending
)

// Sender posts a guest message with its trailing history and returns the
// resolved assistant text. Satisfied by webhook.Client.
type Sender interface {
	Send(ctx context.Context, message string, history []conversation.Message, loc string) (string, error)
}

// TimeoutChecker lets the view distinguish a request deadline from other
// failures so it can pick the right canned message.
type TimeoutChecker func(error) bool

type ChatViewModel struct {
	store         conversation.Store
	sender        Sender
	locales       *locale.Manager
	historyWindow int
	isTimeout     TimeoutChecker

	messages     []conversation.Message
	viewport     viewport.Model
	textarea     textarea.Model
	spinner      spinner.Model
	localePicker LocalePickerModel
	width        int
	height       int
	state        SendState
	ctx          context.Context
	cancelFunc   context.CancelFunc
	mdRenderer   *glamour.TermRenderer
}

// MessagesLoaded carries the rehydrated log at startup.
type MessagesLoaded struct {
	Messages []conversation.Message
}

// UserMessageCommitted reports the optimistic append. Messages is the
// freshly appended log returned by the store, never a stale snapshot.
type UserMessageCommitted struct {
	Content  string
	Messages []conversation.Message
}

// ResponseResolved carries the assistant reply plus the log it extends.
type ResponseResolved struct {
	Reply string
	Base  []conversation.Message
}

// ResponseFailed carries the canned localized message for a failed send.
type ResponseFailed struct {
	Err    error
	Canned string
	Base   []conversation.Message
}

// ConversationCleared is sent after the log has been emptied.
type ConversationCleared struct{}

// createMarkdownRenderer creates a markdown renderer with fallback handling
func createMarkdownRenderer(width int) *glamour.TermRenderer {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-10),
	)
	if err == nil {
		return renderer
	}

	logging.Error("Failed to create markdown renderer with auto style: %v, trying fallback", err)

	renderer, err = glamour.NewTermRenderer(
		glamour.WithWordWrap(width - 10),
	)
	if err == nil {
		return renderer
	}

	logging.Error("Failed to create basic markdown renderer: %v, rendering plain text", err)
	return nil
}

// safeRenderMarkdown renders assistant markdown, falling back to plain text
func (m *ChatViewModel) safeRenderMarkdown(content string) string {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("Panic in markdown rendering: %v", r)
		}
	}()

	if m.mdRenderer == nil || content == "" {
		return content
	}

	rendered, err := m.mdRenderer.Render(content)
	if err != nil {
		logging.Error("Markdown rendering error: %v, falling back to plain text", err)
		return content
	}

	return strings.TrimRight(rendered, "\n")
}

func NewChatViewModel(store conversation.Store, sender Sender, locales *locale.Manager, historyWindow int, isTimeout TimeoutChecker, width, height int) ChatViewModel {
	strs := locales.Strings()

	ta := textarea.New()
	ta.Placeholder = strs.InputPlaceholder
	ta.Focus()
	ta.CharLimit = 2000
	ta.SetWidth(width - 4)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	// Keep only essential editing keys
	ta.KeyMap.CharacterForward = key.NewBinding(key.WithKeys("right"))
	ta.KeyMap.CharacterBackward = key.NewBinding(key.WithKeys("left"))
	ta.KeyMap.LineStart = key.NewBinding(key.WithKeys("home"))
	ta.KeyMap.LineEnd = key.NewBinding(key.WithKeys("end"))
	ta.KeyMap.DeleteCharacterBackward = key.NewBinding(key.WithKeys("backspace"))
	ta.KeyMap.DeleteCharacterForward = key.NewBinding(key.WithKeys("delete"))
	ta.KeyMap.LineNext = key.NewBinding()
	ta.KeyMap.LinePrevious = key.NewBinding()
	ta.KeyMap.InsertNewline = key.NewBinding()

	viewportHeight := height - titleHeight - textareaHeight - helpHeight - padding
	vp := viewport.New(width-6, viewportHeight)
	vp.SetContent("")
	vp.MouseWheelDelta = 2
	vp.KeyMap.Down = key.NewBinding(key.WithKeys("down"))
	vp.KeyMap.Up = key.NewBinding(key.WithKeys("up"))
	vp.KeyMap.PageDown = key.NewBinding(key.WithKeys("pgdown"))
	vp.KeyMap.PageUp = key.NewBinding(key.WithKeys("pgup"))
	vp.KeyMap.HalfPageDown = key.NewBinding()
	vp.KeyMap.HalfPageUp = key.NewBinding()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	ctx, cancel := context.WithCancel(context.Background())

	lp := NewLocalePickerModel(locales.Current())
	lp.UpdateSize(width, height)

	return ChatViewModel{
		store:         store,
		sender:        sender,
		locales:       locales,
		historyWindow: historyWindow,
		isTimeout:     isTimeout,
		viewport:      vp,
		textarea:      ta,
		spinner:       sp,
		localePicker:  lp,
		width:         width,
		height:        height,
		ctx:           ctx,
		cancelFunc:    cancel,
		mdRenderer:    createMarkdownRenderer(width),
	}
}

func (m ChatViewModel) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.loadMessages(),
	)
}

func (m ChatViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Locale picker messages take precedence over everything else
	switch msg := msg.(type) {
	case LocaleSelected:
		if err := m.locales.Set(m.ctx, msg.Code); err != nil {
			logging.Warn("Locale selection rejected: %v", err)
		}
		m.localePicker.Hide()
		m.textarea.Placeholder = m.locales.Strings().InputPlaceholder
		m.textarea.Focus()
		m.renderMessages()
		return m, nil

	case LocalePickerClosed:
		m.localePicker.Hide()
		m.textarea.Focus()
		return m, nil
	}

	if m.localePicker.IsVisible() {
		if cmd := m.localePicker.UpdatePicker(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		viewportHeight := msg.Height - titleHeight - textareaHeight - helpHeight - padding
		m.viewport.Width = msg.Width - 6
		m.viewport.Height = viewportHeight
		m.textarea.SetWidth(msg.Width - 4)
		m.localePicker.UpdateSize(msg.Width, msg.Height)
		m.mdRenderer = createMarkdownRenderer(msg.Width)
		m.renderMessages()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+x", "ctrl+c":
			m.cancelFunc()
			return m, tea.Quit

		case "ctrl+g":
			if m.state == StateIdle {
				m.localePicker = NewLocalePickerModel(m.locales.Current())
				m.localePicker.UpdateSize(m.width, m.height)
				m.localePicker.Show()
			}
			return m, nil

		case "ctrl+l":
			if m.state == StateIdle {
				return m, m.clearConversation()
			}
			return m, nil

		case "enter":
			// A submit while Sending is a no-op; the input stays disabled
			// until the state machine returns to Idle.
			if m.state == StateIdle && strings.TrimSpace(m.textarea.Value()) != "" {
				content := strings.TrimSpace(m.textarea.Value())
				m.textarea.Reset()
				m.state = StateSending
				return m, tea.Batch(m.spinner.Tick, m.commitUserMessage(content))
			}
		}

	case MessagesLoaded:
		m.messages = msg.Messages
		m.renderMessages()
		m.viewport.GotoBottom()
		return m, nil

	case UserMessageCommitted:
		m.messages = msg.Messages
		m.renderMessages()
		m.viewport.GotoBottom()
		return m, m.sendToAssistant(msg.Content, msg.Messages)

	case ResponseResolved:
		return m.appendAssistant(msg.Base, msg.Reply)

	case ResponseFailed:
		logging.Error("Send failed: %v", msg.Err)
		return m.appendAssistant(msg.Base, msg.Canned)

	case ConversationCleared:
		m.messages = nil
		m.renderMessages()
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.state == StateIdle {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m ChatViewModel) View() string {
	strs := m.locales.Strings()

	var b strings.Builder

	b.WriteString(TitleWithPaddingStyle.Render("Guest Concierge") + "\n")

	statusLine := fmt.Sprintf("Language: %s", strs.DisplayName)
	if m.state == StateSending {
		statusLine += " | " + m.spinner.View() + " " + strs.Sending
	}
	b.WriteString(statusBarStyle.Render(statusLine) + "\n\n")

	b.WriteString(RenderViewportWithBorder(m.viewport.View()))
	b.WriteString("\n")

	if scrollInfo := m.renderScrollIndicator(); scrollInfo != "" {
		b.WriteString(scrollInfo)
	}
	b.WriteString("\n")

	b.WriteString(m.textarea.View() + "\n")
	b.WriteString(helpStyle.Render(strs.SendHint))

	return m.localePicker.RenderOverlay(b.String())
}

func (m ChatViewModel) renderScrollIndicator() string {
	if m.viewport.TotalLineCount() <= m.viewport.Height {
		return ""
	}
	return ScrollIndicatorStyle.Render(fmt.Sprintf(" %3.f%%", m.viewport.ScrollPercent()*100))
}

func (m ChatViewModel) loadMessages() tea.Cmd {
	return func() tea.Msg {
		messages, err := m.store.Messages(m.ctx)
		if err != nil {
			logging.Error("Failed to load conversation log: %v", err)
			return MessagesLoaded{}
		}
		return MessagesLoaded{Messages: messages}
	}
}

// commitUserMessage appends the guest's message optimistically. The send
// continues from the log the store hands back, so a fast follow-up can
// never work from a stale snapshot.
func (m ChatViewModel) commitUserMessage(content string) tea.Cmd {
	return func() tea.Msg {
		userMsg := conversation.NewMessage(conversation.RoleUser, content)
		updated, err := m.store.Append(m.ctx, userMsg)
		if err != nil {
			// Persistence failed; the log is unchanged but the guest still
			// gets an answer. Carry the message forward in-memory only.
			updated = append(updated, userMsg)
		}
		return UserMessageCommitted{Content: content, Messages: updated}
	}
}

func (m ChatViewModel) sendToAssistant(content string, base []conversation.Message) tea.Cmd {
	return func() tea.Msg {
		history := conversation.Window(base, m.historyWindow)

		reply, err := m.sender.Send(m.ctx, content, history, string(m.locales.Current()))
		if err != nil {
			strs := m.locales.Strings()
			canned := strs.ProcessingError
			if m.isTimeout != nil && m.isTimeout(err) {
				canned = strs.Timeout
			}
			return ResponseFailed{Err: err, Canned: canned, Base: base}
		}

		if reply == "" {
			reply = m.locales.Strings().Unavailable
		}
		return ResponseResolved{Reply: reply, Base: base}
	}
}

// appendAssistant lands the assistant turn transactionally on top of the
// base log captured at send time, then returns the machine to Idle.
func (m ChatViewModel) appendAssistant(base []conversation.Message, content string) (tea.Model, tea.Cmd) {
	assistantMsg := conversation.NewMessage(conversation.RoleAssistant, content)
	final := append(append([]conversation.Message{}, base...), assistantMsg)

	updated, err := m.store.Replace(m.ctx, final)
	if err != nil {
		// Keep the reply visible even when persistence failed.
		updated = final
	}

	m.messages = updated
	m.state = StateIdle
	m.renderMessages()
	m.viewport.GotoBottom()
	return m, nil
}

func (m ChatViewModel) clearConversation() tea.Cmd {
	return func() tea.Msg {
		if err := m.store.Clear(m.ctx); err != nil {
			logging.Error("Failed to clear conversation: %v", err)
		}
		return ConversationCleared{}
	}
}

func (m *ChatViewModel) renderMessages() {
	strs := m.locales.Strings()

	if len(m.messages) == 0 {
		m.viewport.SetContent(WelcomeStyle.Render(strs.Welcome))
		return
	}

	var b strings.Builder
	for _, msg := range m.messages {
		timestamp := msg.Timestamp.Format("15:04")

		if msg.Role == conversation.RoleUser {
			b.WriteString(GetTimestampStyle(m.width).Render(timestamp) + "\n")
			b.WriteString(GetUserMessageContentStyle(m.width).Render(
				UserMessageLabelStyle.Render(strs.GuestLabel+": ") + msg.Content))
		} else {
			b.WriteString(AssistantMessageLabelStyle.Render(strs.AssistantLabel) +
				" " + TimestampStyle.Render(timestamp) + "\n")
			b.WriteString(GetAssistantMessageContentStyle(m.width).Render(
				m.safeRenderMarkdown(msg.Content)))
		}
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
}

package views

import "github.com/charmbracelet/lipgloss"

var (
	StatusDefaultStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	StatusThinkingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Italic(true)
	StatusExecutingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	StatusDoneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	AssistantMessageStyle = lipgloss.NewStyle()
	InputPromptStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)

	// Result tags such as [run] and [write_file:DRYRUN].
	TagStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	DryRunTagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)

	ProposalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	PreviewStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).PaddingLeft(2)
	NoticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	BannerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	HelpStyle     = lipgloss.NewStyle().Faint(true)
)

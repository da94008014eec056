// Package topics adds help topics to a cobra command tree. Topics are
// files in a directory, usually embedded in the binary, and are read with
// "<program> help <topic>". A topic named option-<flag> also answers to
// "help --<flag>".
package topics

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const optionPrefix = "option-"

// TopicManager indexes the topics found under a directory
type TopicManager struct {
	fs         afero.Fs
	topicsDir  string
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer

	// help cobra would have used without topics
	commandHelp func(*cobra.Command, []string)
}

type Topic struct {
	Name     string
	FilePath string
	Content  string
}

type Options struct {
	// Extensions of topic files. Defaults to .txt and .md.
	Extensions []string
	// Renderer defaults to PlainRenderer
	Renderer Renderer
}

func New(fsys afero.Fs, topicsDir string) *TopicManager {
	return NewWithOptions(fsys, topicsDir, Options{})
}

func NewWithOptions(fsys afero.Fs, topicsDir string, opts Options) *TopicManager {
	tm := &TopicManager{
		fs:         fsys,
		topicsDir:  topicsDir,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(tm.extensions) == 0 {
		tm.extensions = []string{".txt", ".md"}
	}
	if tm.renderer == nil {
		tm.renderer = PlainRenderer{}
	}
	return tm
}

func (tm *TopicManager) isTopicFile(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range tm.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// scanTopics indexes every topic file under the directory, subdirectories
// included. A missing directory yields no topics.
func (tm *TopicManager) scanTopics() error {
	if _, err := tm.fs.Stat(tm.topicsDir); os.IsNotExist(err) {
		return nil
	}
	return afero.Walk(tm.fs, tm.topicsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !tm.isTopicFile(path) {
			return err
		}
		content, err := afero.ReadFile(tm.fs, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		tm.topics[name] = &Topic{Name: name, FilePath: path, Content: string(content)}
		return nil
	})
}

// GetTopic looks a topic up by name. Leading dashes are dropped and the
// option- prefix is tried when the bare name has no topic.
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	name = strings.TrimPrefix(strings.TrimPrefix(name, "--"), "-")
	if topic, ok := tm.topics[name]; ok {
		return topic, true
	}
	topic, ok := tm.topics[optionPrefix+name]
	return topic, ok
}

func (tm *TopicManager) ListTopics() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	return names
}

func Initialize(rootCmd *cobra.Command, fsys afero.Fs, topicsDir string) error {
	return InitializeWithOptions(rootCmd, fsys, topicsDir, Options{})
}

// InitializeWithOptions replaces the help command and the help function of
// rootCmd with topic-aware versions
func InitializeWithOptions(rootCmd *cobra.Command, fsys afero.Fs, topicsDir string, opts Options) error {
	tm := NewWithOptions(fsys, topicsDir, opts)
	if err := tm.scanTopics(); err != nil {
		return fmt.Errorf("failed to scan topics: %w", err)
	}
	tm.commandHelp = rootCmd.HelpFunc()

	for _, c := range rootCmd.Commands() {
		if c.Name() == "help" {
			rootCmd.RemoveCommand(c)
		}
	}
	helpCmd := tm.newHelpCmd(rootCmd)
	// SetHelpCommand keeps cobra from adding its own next to ours
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(helpCmd)

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 && tm.show(cmd.OutOrStdout(), args[0]) {
			return
		}
		tm.commandHelp(cmd, args)
	})
	return nil
}

func (tm *TopicManager) newHelpCmd(rootCmd *cobra.Command) *cobra.Command {
	program := rootCmd.Name()
	return &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: fmt.Sprintf("Help for any command or topic. Run %s help [command or topic] for details.\n\n"+
			"To list the topics:\n  %s help topics", program, program),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			return append(completions, tm.ListTopics()...), cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			switch {
			case len(args) == 0:
				tm.commandHelp(rootCmd, nil)
			case args[0] == "topics":
				tm.printTopics(cmd.OutOrStdout(), program)
			case tm.show(cmd.OutOrStdout(), args[0]):
			default:
				target := rootCmd
				if c, _, err := rootCmd.Find(args); err == nil && c != nil {
					target = c
				}
				tm.commandHelp(target, args)
			}
		},
	}
}

// show renders the topic under name and reports whether there was one
func (tm *TopicManager) show(w io.Writer, name string) bool {
	topic, ok := tm.GetTopic(name)
	if !ok {
		return false
	}
	_, _ = fmt.Fprint(w, tm.renderer.Render(topic.Content, filepath.Ext(topic.FilePath)))
	return true
}

func (tm *TopicManager) printTopics(w io.Writer, program string) {
	names := tm.ListTopics()
	if len(names) == 0 {
		_, _ = fmt.Fprintln(w, "No help topics available.")
		return
	}
	sort.Strings(names)

	var general, options []string
	for _, name := range names {
		if flag, ok := strings.CutPrefix(name, optionPrefix); ok {
			options = append(options, "--"+flag)
		} else {
			general = append(general, name)
		}
	}

	_, _ = fmt.Fprintln(w, "Available help topics:")
	printSection(w, "General topics:", general)
	printSection(w, "Option topics:", options)
	_, _ = fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", program)
}

func printSection(w io.Writer, title string, names []string) {
	if len(names) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "\n%s\n", title)
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "  %s\n", name)
	}
}

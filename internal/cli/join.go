package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kailash-Mistry/Interviewly/internal/config"
	"github.com/Kailash-Mistry/Interviewly/internal/session"
	"github.com/Kailash-Mistry/Interviewly/internal/ui"
)

var (
	flagServerURL string
	flagName      string
	flagSTUN      string
	flagTURN      string
	flagTURNUser  string
	flagTURNPass  string
	flagCall      bool
)

var joinCmd = &cobra.Command{
	Use:     "join <room-id>",
	Aliases: []string{"j"},
	Short:   "Join an interview room",
	Long: `Join an interview room on the relay server.

Examples:
  interviewly join abc
  interviewly join abc --name alice
  interviewly join abc --call`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return joinRoom(args[0])
	},
}

func init() {
	joinCmd.Flags().StringVar(&flagServerURL, "server", "", "relay websocket URL")
	joinCmd.Flags().StringVar(&flagName, "name", "", "chat display name")
	joinCmd.Flags().StringVar(&flagSTUN, "stun", "", "STUN server URL")
	joinCmd.Flags().StringVar(&flagTURN, "turn", "", "TURN server URL")
	joinCmd.Flags().StringVar(&flagTURNUser, "turn-user", "", "TURN username")
	joinCmd.Flags().StringVar(&flagTURNPass, "turn-pass", "", "TURN password")
	joinCmd.Flags().BoolVar(&flagCall, "call", false, "negotiate a direct peer link after joining")
	rootCmd.AddCommand(joinCmd)
}

func joinRoom(roomID string) error {
	cfg, err := config.LoadClient(config.ClientOptions{
		ServerURL:  flagServerURL,
		Name:       flagName,
		STUNServer: flagSTUN,
		TURNServer: flagTURN,
		TURNUser:   flagTURNUser,
		TURNPass:   flagTURNPass,
	})
	if err != nil {
		return err
	}

	co := session.NewCoordinator(cfg.ServerURL, cfg.Name)
	defer co.Close()

	co.OnCodeUpdate(func(up session.CodeUpdate) {
		fmt.Printf("%s %s\n", ui.IconCode,
			ui.MutedStyle.Render(fmt.Sprintf("document updated (v%d, %d bytes)", co.Editor.Version(), len(up.Code))))
	})
	co.OnChat(func(msg session.ChatMessage) {
		ui.PrintChat(msg.Sender, msg.Timestamp, msg.Message)
	})

	var call *callSession
	if flagCall {
		call, err = newCallSession(cfg, co, roomID)
		if err != nil {
			return err
		}
		defer call.Close()
	}

	stopSpinner := ui.RunConnectionSpinner("Connecting to relay...")
	err = co.Connect()
	stopSpinner()
	if err != nil {
		return err
	}

	if err := co.Join(roomID); err != nil {
		return err
	}
	ui.PrintSuccessf("Joined room %s as %s", roomID, cfg.Name)

	if call != nil {
		if err := call.Offer(); err != nil {
			return err
		}
	}

	printHelp()
	return inputLoop(co)
}

func printHelp() {
	ui.PrintInfo("Type to chat. Commands: /edit <code>, /doc, /audio, /video, /quit")
}

// inputLoop reads stdin until EOF or /quit. Anything that is not a command
// is sent as chat; the transcript line appears when the relay echoes it back.
func inputLoop(co *session.Coordinator) error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit":
			return nil

		case line == "/doc":
			fmt.Println(ui.BoxStyle.Render(co.Editor.Text()))

		case strings.HasPrefix(line, "/edit "):
			if err := co.EditorChanged(strings.TrimPrefix(line, "/edit ")); err != nil {
				ui.PrintError(err.Error())
			}

		case line == "/audio":
			// Toggles are local capture state only; nothing goes on the wire.
			if co.Media.ToggleAudio() {
				ui.PrintInfof("%s microphone on", ui.IconMic)
			} else {
				ui.PrintInfof("%s microphone muted", ui.IconMic)
			}

		case line == "/video":
			if co.Media.ToggleVideo() {
				ui.PrintInfof("%s camera on", ui.IconCamera)
			} else {
				ui.PrintInfof("%s camera off", ui.IconCamera)
			}

		default:
			if err := co.Chat(line); err != nil {
				ui.PrintError(err.Error())
			}
		}
	}
	return scanner.Err()
}

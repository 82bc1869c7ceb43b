package session

// Coordinator ties one relay connection to the local editor mirror and media
// toggles. It enforces the two client-side rules: a just-received remote
// snapshot is never re-broadcast as a local edit, and media toggles never
// touch the wire.
type Coordinator struct {
	Client *Client
	Editor *Editor
	Media  *Media

	dispatcher Dispatcher
	room       string
	name       string
}

func NewCoordinator(serverURL, name string) *Coordinator {
	return &Coordinator{
		Client: NewClient(serverURL),
		Editor: NewEditor(),
		Media:  NewMedia(),
		name:   name,
	}
}

// Connect dials the relay and starts dispatching incoming events.
func (co *Coordinator) Connect() error {
	if err := co.Client.Connect(); err != nil {
		return err
	}
	go co.dispatcher.Run(co.Client.Incoming())
	return nil
}

// Join enters a room. The relay moves this connection out of any previous
// room, so the coordinator only tracks the latest.
func (co *Coordinator) Join(room string) error {
	if err := co.Client.JoinRoom(room); err != nil {
		return err
	}
	co.room = room
	return nil
}

// Room returns the currently joined room.
func (co *Coordinator) Room() string { return co.room }

// Name returns the chat display name.
func (co *Coordinator) Name() string { return co.name }

// EditorChanged reports a local editor change. It broadcasts the snapshot
// unless the editor recognizes it as the remote state already applied.
func (co *Coordinator) EditorChanged(code string) error {
	if !co.Editor.LocalChange(code) {
		return nil
	}
	return co.Client.SendCode(co.room, code)
}

// Chat broadcasts a chat message. The local transcript is fed by the relay's
// echo, not written here.
func (co *Coordinator) Chat(message string) error {
	return co.Client.SendChat(co.room, message, co.name)
}

// OnCodeUpdate registers a callback for remote document snapshots. The
// snapshot is applied to the editor mirror before the callback runs.
func (co *Coordinator) OnCodeUpdate(fn func(CodeUpdate)) {
	co.dispatcher.OnCodeUpdate(func(up CodeUpdate) {
		co.Editor.ApplyRemote(up.Code)
		if fn != nil {
			fn(up)
		}
	})
}

// OnChat registers a callback for chat messages, the coordinator's own
// echoed messages included.
func (co *Coordinator) OnChat(fn func(ChatMessage)) { co.dispatcher.OnChat(fn) }

// OnOffer registers a callback for relayed SDP offers.
func (co *Coordinator) OnOffer(fn func(Signal)) { co.dispatcher.OnOffer(fn) }

// OnAnswer registers a callback for relayed SDP answers.
func (co *Coordinator) OnAnswer(fn func(Signal)) { co.dispatcher.OnAnswer(fn) }

// OnCandidate registers a callback for relayed ICE candidates.
func (co *Coordinator) OnCandidate(fn func(Signal)) { co.dispatcher.OnCandidate(fn) }

// Close tears the connection down.
func (co *Coordinator) Close() {
	co.Client.Close()
}

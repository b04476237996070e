package domain

// Sender は発言者です。
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Turn はチャットのトランスクリプトにおける 1 発言です。
type Turn struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

const (
	// ChatGreeting はトランスクリプトの先頭に置かれるボットの挨拶です。
	ChatGreeting = "Hello! Ask me anything."
	// ChatFallbackReply は会話 API が失敗したときに返す固定の返答です。
	ChatFallbackReply = "Sorry, I had a little trouble thinking. Please try asking again!"
	// ChatPersona はチャットセッション作成時に設定するシステム指示です。
	ChatPersona = "You are a friendly and helpful assistant for parents and children. Keep your answers concise and cheerful."
)

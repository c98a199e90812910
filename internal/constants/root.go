package constants

// Slice identifies one independently persisted part of the domain store
type Slice string

const (
	AppName           = "learnnova"
	DefaultConfigPath = "~/.config/learnnova/learnnova.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard clock format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// KeyNamespace prefixes every durable key, e.g. "learnnova:study"
	KeyNamespace = "learnnova"

	// Slices
	SliceStudy  Slice = "study"
	SliceSleep  Slice = "sleep"
	SliceHabits Slice = "habits"
	SliceLinks  Slice = "lectures"
	SliceGoals  Slice = "goals"

	// Keyring users
	KeyringUserDatabase = "database-connection"
	KeyringUserOpenAI   = "openai-api-key"
	KeyringUserGemini   = "gemini-api-key"

	// Environment variables
	EnvDBConnection = "LEARNNOVA_DB_CONNECTION"
	EnvTimezone     = "LEARNNOVA_TIMEZONE"
	EnvChatProvider = "LEARNNOVA_CHAT_PROVIDER"
	EnvChatModel    = "LEARNNOVA_CHAT_MODEL"
	EnvListenAddr   = "LEARNNOVA_LISTEN_ADDR"
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvGeminiKey    = "GEMINI_API_KEY"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = AppName + "-"
	BackupFileSuffix = ".db"
)

// AllSlices lists the five slices in persistence order
var AllSlices = []Slice{SliceStudy, SliceSleep, SliceHabits, SliceLinks, SliceGoals}

// Key returns the namespaced durable key for a slice.
func (s Slice) Key(namespace string) string {
	if namespace == "" {
		namespace = KeyNamespace
	}
	return namespace + ":" + string(s)
}

// ParseSlice maps a user supplied slice name onto a Slice. "links" is accepted
// as an alias for the lectures slice.
func ParseSlice(name string) (Slice, bool) {
	switch name {
	case "study":
		return SliceStudy, true
	case "sleep":
		return SliceSleep, true
	case "habits", "habit":
		return SliceHabits, true
	case "lectures", "links", "link":
		return SliceLinks, true
	case "goals":
		return SliceGoals, true
	}
	return "", false
}

package bot

const (
	CallbackPrefixAction = "action_"
	CallbackShorter      = CallbackPrefixAction + "shorter"
	CallbackLonger       = CallbackPrefixAction + "longer"
	CallbackSendChannel  = "send_to_channel"

	MaxMessageLength = 3500
	maxErrorRunes    = 1000
	pollTimeout      = 60
)

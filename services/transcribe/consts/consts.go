package consts

const (
	// Audio formats accepted by the Whisper API
	FormatMP3  = "mp3"
	FormatMP4  = "mp4"
	FormatMPEG = "mpeg"
	FormatMPGA = "mpga"
	FormatM4A  = "m4a"
	FormatWAV  = "wav"
	FormatWEBM = "webm"

	DefaultExtension = "." + FormatWAV
	MaxAudioSize     = 25 * 1024 * 1024 // 25MB, Whisper upload limit

	// Full pipeline messages
	MsgNoFile            = "Error: No file provided"
	MsgUploadHint        = "Please upload an audio file."
	MsgProcessFailed     = "Error: Failed to process audio file"
	MsgErrorDetails      = "Error details: "
	MsgUnexpected        = "Error: Unexpected server error"
	MsgUnexpectedDetails = "Please try again later. Error: "
	MsgFileTooLarge      = "Error: File too large"

	// Summary-only messages
	MsgSummaryOnlyNoFile = "Error: No file provided. Please upload an audio file."
	MsgSummaryOnlyFailed = "Error processing audio file: "

	MsgNoContent    = "No content to summarize."
	MsgSummaryError = "Error generating summary: "

	SummaryPrompt = "Please provide a concise summary of the following transcribed audio content. " +
		"Focus on the key points, main topics discussed, and important information. " +
		"Keep the summary clear and well-structured:\n\n%s"
)

// SupportedFormats lists the extensions shown on the usage page.
var SupportedFormats = []string{FormatMP3, FormatMP4, FormatMPEG, FormatMPGA, FormatM4A, FormatWAV, FormatWEBM}

package classifier

// Sentiment is the tone of a candidate answer.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentUnknown  Sentiment = "Unknown"
)

// Confidence is how sure the model is about AI-generated text detection.
type Confidence string

const (
	ConfidenceHigh    Confidence = "High"
	ConfidenceMedium  Confidence = "Medium"
	ConfidenceLow     Confidence = "Low"
	ConfidenceUnknown Confidence = "Unknown"
)

// Correctness is the verdict on a technical answer.
type Correctness string

const (
	CorrectnessCorrect       Correctness = "Correct"
	CorrectnessIncorrect     Correctness = "Incorrect"
	CorrectnessNotApplicable Correctness = "NotApplicable"
)

// DefaultAIReason is used when the detection response carries no reason.
const DefaultAIReason = "Analysis not available"

// AIDetection is the parsed result of the AI-generated text check.
type AIDetection struct {
	Generated  bool       `json:"generated"`
	Confidence Confidence `json:"confidence"`
	Reason     string     `json:"reason"`
}

// Analysis is everything the classifier learned about one substantive answer.
type Analysis struct {
	Sentiment    Sentiment   `json:"sentiment"`
	AIGenerated  bool        `json:"ai_generated"`
	AIConfidence Confidence  `json:"ai_confidence"`
	AIReason     string      `json:"ai_reason"`
	Correctness  Correctness `json:"correctness"`
}

// Request describes an answer to analyse. Correctness is only checked when
// CheckCorrectness is set; otherwise the result carries NotApplicable.
type Request struct {
	Question         string
	Answer           string
	CheckCorrectness bool
}

func defaultDetection() AIDetection {
	return AIDetection{
		Generated:  false,
		Confidence: ConfidenceLow,
		Reason:     DefaultAIReason,
	}
}

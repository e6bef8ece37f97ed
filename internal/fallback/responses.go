package fallback

// DefaultReply is the English reply used when every provider is
// exhausted. The finalizer translates it to the user's language.
const DefaultReply = "I'm still learning. Could you rephrase or ask another way?"

// Apology responses cover a pipeline crash before the orchestrator ever
// ran. No translator is reachable at that point, so these are canned per
// language; the chat must still "reply", never surface an error body.
var apologies = map[string]string{
	"en": "Sorry, I'm having trouble right now. Please try again in a moment.",
	"es": "Lo siento, estoy teniendo problemas ahora. Por favor intenta de nuevo en un momento.",
	"fr": "Désolé, je rencontre un problème en ce moment. Veuillez réessayer dans un instant.",
	"hi": "क्षमा करें, अभी कुछ समस्या आ रही है। कृपया थोड़ी देर में फिर से प्रयास करें।",
}

// GetApology returns the crash apology in the given language, falling
// back to English.
func GetApology(language string) string {
	if reply, ok := apologies[language]; ok {
		return reply
	}
	return apologies["en"]
}

package locale

// Strings holds every canned guest-facing string for one locale. The
// assistant backend answers in whatever language it likes; these cover the
// widget chrome and the failure paths, which must never surface a raw error.
type Strings struct {
	DisplayName      string
	Welcome          string
	InputPlaceholder string
	SendHint         string
	Sending          string
	ProcessingError  string
	Unavailable      string
	Timeout          string
	AssistantLabel   string
	GuestLabel       string
}

var translations = map[Locale]Strings{
	English: {
		DisplayName:      "English",
		Welcome:          "Welcome! I'm your virtual concierge. Ask me about the hotel, your stay, or the area.",
		InputPlaceholder: "Type your message...",
		SendHint:         "Enter: Send • Ctrl+L: New conversation • Ctrl+G: Language • Ctrl+X: Exit",
		Sending:          "Thinking...",
		ProcessingError:  "Sorry, something went wrong while processing your message. Please try again.",
		Unavailable:      "The concierge service is unavailable right now. Please try again in a moment.",
		Timeout:          "The concierge is taking longer than expected. Please try again.",
		AssistantLabel:   "Concierge",
		GuestLabel:       "You",
	},
	Spanish: {
		DisplayName:      "Español",
		Welcome:          "¡Bienvenido! Soy su conserje virtual. Pregúnteme sobre el hotel, su estancia o la zona.",
		InputPlaceholder: "Escriba su mensaje...",
		SendHint:         "Enter: Enviar • Ctrl+L: Nueva conversación • Ctrl+G: Idioma • Ctrl+X: Salir",
		Sending:          "Pensando...",
		ProcessingError:  "Lo sentimos, ha ocurrido un error al procesar su mensaje. Inténtelo de nuevo.",
		Unavailable:      "El servicio de conserjería no está disponible en este momento. Inténtelo de nuevo en un momento.",
		Timeout:          "El conserje está tardando más de lo esperado. Inténtelo de nuevo.",
		AssistantLabel:   "Conserje",
		GuestLabel:       "Usted",
	},
	French: {
		DisplayName:      "Français",
		Welcome:          "Bienvenue ! Je suis votre concierge virtuel. Interrogez-moi sur l'hôtel, votre séjour ou les environs.",
		InputPlaceholder: "Saisissez votre message...",
		SendHint:         "Entrée : Envoyer • Ctrl+L : Nouvelle conversation • Ctrl+G : Langue • Ctrl+X : Quitter",
		Sending:          "Réflexion...",
		ProcessingError:  "Désolé, une erreur s'est produite lors du traitement de votre message. Veuillez réessayer.",
		Unavailable:      "Le service de conciergerie est indisponible pour le moment. Veuillez réessayer dans un instant.",
		Timeout:          "Le concierge met plus de temps que prévu. Veuillez réessayer.",
		AssistantLabel:   "Concierge",
		GuestLabel:       "Vous",
	},
	German: {
		DisplayName:      "Deutsch",
		Welcome:          "Willkommen! Ich bin Ihr virtueller Concierge. Fragen Sie mich zum Hotel, Ihrem Aufenthalt oder der Umgebung.",
		InputPlaceholder: "Nachricht eingeben...",
		SendHint:         "Enter: Senden • Strg+L: Neue Unterhaltung • Strg+G: Sprache • Strg+X: Beenden",
		Sending:          "Denke nach...",
		ProcessingError:  "Entschuldigung, bei der Verarbeitung Ihrer Nachricht ist ein Fehler aufgetreten. Bitte versuchen Sie es erneut.",
		Unavailable:      "Der Concierge-Dienst ist derzeit nicht verfügbar. Bitte versuchen Sie es gleich noch einmal.",
		Timeout:          "Der Concierge braucht länger als erwartet. Bitte versuchen Sie es erneut.",
		AssistantLabel:   "Concierge",
		GuestLabel:       "Sie",
	},
	Italian: {
		DisplayName:      "Italiano",
		Welcome:          "Benvenuto! Sono il suo concierge virtuale. Mi chieda dell'hotel, del suo soggiorno o della zona.",
		InputPlaceholder: "Scriva il suo messaggio...",
		SendHint:         "Invio: Invia • Ctrl+L: Nuova conversazione • Ctrl+G: Lingua • Ctrl+X: Esci",
		Sending:          "Sto pensando...",
		ProcessingError:  "Spiacenti, si è verificato un errore durante l'elaborazione del messaggio. Riprovi.",
		Unavailable:      "Il servizio di concierge non è al momento disponibile. Riprovi tra un attimo.",
		Timeout:          "Il concierge sta impiegando più tempo del previsto. Riprovi.",
		AssistantLabel:   "Concierge",
		GuestLabel:       "Lei",
	},
}

// StringsFor returns the canned strings for a locale, falling back to the
// default locale for anything unknown.
func StringsFor(code Locale) Strings {
	if s, ok := translations[code]; ok {
		return s
	}
	return translations[Fallback]
}

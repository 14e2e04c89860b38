// Package i18n holds the user-facing message tables. A table is chosen once at
// startup and handed to the components that produce user-visible text.
package i18n

import (
	"fmt"
	"strings"
)

type Language string

const (
	English Language = "EN"
	French  Language = "FR"
)

const DefaultLanguage = English

type Messages struct {
	Language                Language
	APIHitError             string
	DataFetchError          string
	NewsFetchedSuccessfully string
	Success                 string
	UnexpectedAPIDataFormat string
	APIKeyNotFound          string
	TransactionFailed       string
	NoMorePosts             string
	InvalidRequest          string
	InternalError           string
}

var tables = map[Language]Messages{
	English: {
		Language:                English,
		APIHitError:             "Web hose api hit failed.",
		DataFetchError:          "Error fetching data.",
		NewsFetchedSuccessfully: "News fetched and saved successfully.",
		Success:                 "success",
		UnexpectedAPIDataFormat: "Unexpected API response format.",
		APIKeyNotFound:          "Web hose api key not found.",
		TransactionFailed:       "Transaction failed. Rolling back changes.",
		NoMorePosts:             "No more posts to fetch.",
		InvalidRequest:          "Invalid request.",
		InternalError:           "Internal server error.",
	},
	French: {
		Language:                French,
		APIHitError:             "Échec de l'appel à l'API Web hose.",
		DataFetchError:          "Erreur de récupération des données.",
		NewsFetchedSuccessfully: "Les nouvelles ont été récupérées et enregistrées avec succès.",
		Success:                 "succès",
		UnexpectedAPIDataFormat: "Format de réponse API inattendu.",
		APIKeyNotFound:          "Clé API Web Hose introuvable.",
		TransactionFailed:       "Échec de la transaction. Annulation des modifications.",
		NoMorePosts:             "Plus de messages à récupérer.",
		InvalidRequest:          "Requête invalide.",
		InternalError:           "Erreur interne du serveur.",
	},
}

// ParseLanguage accepts the SYSTEM_LANGUAGE value. Empty selects English.
func ParseLanguage(s string) (Language, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultLanguage, nil
	}
	lang := Language(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := tables[lang]; !ok {
		return "", fmt.Errorf("unsupported language: %s (expected EN or FR)", s)
	}
	return lang, nil
}

// For returns the table for lang, falling back to English for unknown values.
func For(lang Language) *Messages {
	m, ok := tables[lang]
	if !ok {
		m = tables[DefaultLanguage]
	}
	return &m
}

// Load parses raw and returns its table.
func Load(raw string) (*Messages, error) {
	lang, err := ParseLanguage(raw)
	if err != nil {
		return nil, err
	}
	return For(lang), nil
}

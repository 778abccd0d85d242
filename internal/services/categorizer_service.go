package services

import (
	"errors"
	"log/slog"
	"strings"

	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/spreadsheet"

	"github.com/google/uuid"
)

// peerLookupLimit caps how much community history one suggestion reads.
const peerLookupLimit = 10

type keywordRule struct {
	keywords []string
	category string
}

// categorizerService implements CategorizerServiceInterface. Suggestions
// resolve in three tiers: the user's learned patterns, peer transaction
// history, and finally a bilingual keyword table.
type categorizerService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	patternRepo     repositories.LearnedPatternRepositoryInterface
	keywordRules    []keywordRule
	logger          *slog.Logger
}

// NewCategorizerService creates a new categorizer service
func NewCategorizerService(
	transactionRepo repositories.TransactionRepositoryInterface,
	patternRepo repositories.LearnedPatternRepositoryInterface,
	logger *slog.Logger,
) CategorizerServiceInterface {
	return &categorizerService{
		transactionRepo: transactionRepo,
		patternRepo:     patternRepo,
		keywordRules:    initKeywordRules(),
		logger:          logger,
	}
}

// NormalizePattern canonicalizes a description for pattern storage and
// lookup. Statement header cells and transaction descriptions share the
// same normalization so learned patterns match across both paths.
func NormalizePattern(description string) string {
	return spreadsheet.NormalizeCell(description)
}

// Suggest returns a category for a description. It never answers "other":
// a suggestion is only useful when it commits to something.
func (s *categorizerService) Suggest(userID uuid.UUID, description string) (string, string) {
	normalized := NormalizePattern(description)
	if normalized == "" {
		return models.CategoryShopping, SuggestionSourceFallback
	}

	if category, ok := s.lookupLearned(userID, normalized); ok {
		return category, SuggestionSourceLearned
	}

	if category, ok := s.lookupHistory(userID, normalized); ok {
		return category, SuggestionSourceHistory
	}

	if category, ok := s.KeywordCategory(normalized); ok {
		return category, SuggestionSourceKeyword
	}

	return models.CategoryShopping, SuggestionSourceFallback
}

// CategorizeForImport resolves a category during statement ingestion.
// Unlike Suggest, it falls back to "other" so unmatched rows surface as
// uncategorized instead of being guessed at.
func (s *categorizerService) CategorizeForImport(userID uuid.UUID, description string) string {
	normalized := NormalizePattern(description)
	if normalized == "" {
		return models.CategoryOther
	}

	if category, ok := s.lookupLearned(userID, normalized); ok {
		return category
	}

	if category, ok := s.lookupHistory(userID, normalized); ok {
		return category
	}

	if category, ok := s.KeywordCategory(normalized); ok {
		return category
	}

	return models.CategoryOther
}

// lookupLearned is tier 1: the user's own learned patterns, exact match
// on the normalized description.
func (s *categorizerService) lookupLearned(userID uuid.UUID, normalized string) (string, bool) {
	match, err := s.patternRepo.GetBestMatch(userID, normalized)
	if err != nil {
		if !errors.Is(err, repositories.ErrLearnedPatternNotFound) {
			s.logger.Warn("learned pattern lookup failed",
				"error", err,
				"user_id", userID)
		}
		return "", false
	}
	return match.Category, true
}

// lookupHistory is tier 2: how peers categorized the same description.
// The winning category is written back as a learned pattern so the next
// lookup resolves in tier 1.
func (s *categorizerService) lookupHistory(userID uuid.UUID, normalized string) (string, bool) {
	peers, err := s.transactionRepo.FindPeersByDescription(normalized, peerLookupLimit)
	if err != nil {
		s.logger.Warn("peer history lookup failed",
			"error", err,
			"user_id", userID)
		return "", false
	}

	category, ok := tallyPeerCategories(peers)
	if !ok {
		return "", false
	}

	pattern := &models.LearnedPattern{
		UserID:     userID,
		Pattern:    normalized,
		Category:   category,
		Confidence: models.ConfidenceAutoLearned,
	}
	if err := s.patternRepo.Upsert(pattern); err != nil {
		// The suggestion still stands; only the cache write failed.
		s.logger.Warn("failed to cache peer-derived pattern",
			"error", err,
			"user_id", userID)
	}

	return category, true
}

// tallyPeerCategories picks the most common effective category among
// peers, ignoring "other". Newest-first peer ordering breaks ties in
// favor of recent behavior.
func tallyPeerCategories(peers []models.Transaction) (string, bool) {
	counts := make(map[string]int, len(peers))
	order := make([]string, 0, len(peers))

	for i := range peers {
		category := peers[i].EffectiveCategory()
		if models.IsOther(category) || category == "" {
			continue
		}
		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		counts[category]++
	}

	best := ""
	bestCount := 0
	for _, category := range order {
		if counts[category] > bestCount {
			best = category
			bestCount = counts[category]
		}
	}

	return best, best != ""
}

// KeywordCategory is tier 3: a fixed bilingual keyword table. Rules are
// ordered; the first matching keyword wins.
func (s *categorizerService) KeywordCategory(description string) (string, bool) {
	normalized := NormalizePattern(description)

	for _, rule := range s.keywordRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(normalized, keyword) {
				return rule.category, true
			}
		}
	}

	return "", false
}

// initKeywordRules builds the keyword table. Keywords are stored in
// normalized form (lowercase, no diacritics) to match NormalizePattern
// output; Spanish aliases cover the bank exports this pipeline targets.
func initKeywordRules() []keywordRule {
	return []keywordRule{
		{
			keywords: []string{"walmart", "supermercado", "superama", "soriana", "chedraui", "costco",
				"kroger", "aldi", "heb", "grocery", "groceries", "abarrotes", "fruteria", "carniceria"},
			category: models.CategoryGroceries,
		},
		{
			keywords: []string{"restaurant", "restaurante", "cafe", "cafeteria", "coffee", "starbucks",
				"mcdonald", "burger", "pizza", "taqueria", "tacos", "sushi", "comida", "food", "bistro"},
			category: models.CategoryDining,
		},
		{
			keywords: []string{"netflix", "spotify", "hbo", "disney", "cinepolis", "cinemex", "cinema",
				"cine", "teatro", "concierto", "steam", "playstation", "xbox"},
			category: models.CategoryEntertainment,
		},
		{
			keywords: []string{"uber", "lyft", "didi", "taxi", "gasolina", "gasolinera", "pemex",
				"shell", "chevron", "metro", "autobus", "parking", "estacionamiento", "peaje", "toll"},
			category: models.CategoryTransportation,
		},
		{
			keywords: []string{"amazon", "mercado libre", "mercadolibre", "liverpool", "palacio de hierro",
				"tienda", "store", "mall", "plaza", "zara", "bershka", "shein"},
			category: models.CategoryShopping,
		},
		{
			keywords: []string{"aeromexico", "volaris", "vivaaerobus", "airline", "vuelo", "flight",
				"hotel", "airbnb", "booking", "expedia", "hostal"},
			category: models.CategoryTravel,
		},
		{
			keywords: []string{"renta", "rent", "hipoteca", "mortgage", "inmobiliaria", "condominio",
				"mantenimiento edificio"},
			category: models.CategoryHousing,
		},
		{
			keywords: []string{"cfe", "luz", "electric", "agua", "water", "gas natural", "telmex",
				"telcel", "izzi", "totalplay", "internet", "telefono", "phone"},
			category: models.CategoryUtilities,
		},
		{
			keywords: []string{"farmacia", "pharmacy", "cvs", "walgreens", "doctor", "hospital",
				"clinica", "dental", "laboratorio", "medic"},
			category: models.CategoryHealthcare,
		},
		{
			keywords: []string{"escuela", "school", "universidad", "university", "colegiatura",
				"curso", "udemy", "coursera", "libreria"},
			category: models.CategoryEducation,
		},
		{
			keywords: []string{"regalo", "gift", "floreria", "florist"},
			category: models.CategoryGifts,
		},
		{
			keywords: []string{"suscripcion", "subscription", "membresia", "membership", "prime",
				"icloud", "google one", "dropbox"},
			category: models.CategorySubscriptions,
		},
		{
			keywords: []string{"servicio", "service", "taller", "lavanderia", "laundry", "tintoreria",
				"barberia", "salon", "estetica", "plomero", "electricista"},
			category: models.CategoryServices,
		},
	}
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	errx "github.com/wayfarer-ai/agent-core/internal/core/error"
	"github.com/wayfarer-ai/agent-core/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferencesRepo adapts Store onto persist.PreferencesStore.
type PreferencesRepo struct {
	store *Store
}

func NewPreferencesRepo(store *Store) *PreferencesRepo {
	return &PreferencesRepo{store: store}
}

func (r *PreferencesRepo) GetPreferences(ctx context.Context, userID string) (domain.Preferences, bool, error) {
	var row userPreferencesModel
	err := r.store.DB().WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Preferences{}, false, nil
	}
	if err != nil {
		return domain.Preferences{}, false, errx.WrapStore(err)
	}

	prefs := domain.Preferences{
		UserID:         row.UserID,
		PreferredLang:  row.PreferredLanguage,
		PreferredModel: row.PreferredModel,
		BudgetMode:     row.BudgetMode,
	}
	if len(row.Favorites) > 0 {
		var fav map[string]any
		if err := json.Unmarshal(row.Favorites, &fav); err == nil {
			prefs.Favorites = fav
		}
	}
	return prefs, true, nil
}

func (r *PreferencesRepo) UpsertPreferences(ctx context.Context, prefs domain.Preferences) error {
	fav, err := json.Marshal(prefs.Favorites)
	if err != nil {
		return errx.New(errx.PersistenceFailed, "encode favorites", err)
	}

	row := userPreferencesModel{
		UserID:            prefs.UserID,
		PreferredLanguage: prefs.PreferredLang,
		PreferredModel:    prefs.PreferredModel,
		BudgetMode:        prefs.BudgetMode,
		Favorites:         fav,
		UpdatedAt:         time.Now().UTC(),
	}

	err = r.store.DB().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"preferred_language", "preferred_model", "budget_mode", "favorites", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return errx.WrapStore(err)
	}
	return nil
}

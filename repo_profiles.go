package idosoms

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ProfileSchemaSQL creates the profiles table. Shipped for tests and for
// embedded SQLite deployments; production schemas are managed elsewhere.
const ProfileSchemaSQL = `CREATE TABLE IF NOT EXISTS profiles (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	cpf_hash TEXT,
	user_role TEXT NOT NULL DEFAULT 'agente',
	ibge_municipio TEXT,
	municipio_nome TEXT,
	equipes TEXT,
	cnes_unidades TEXT,
	active BOOLEAN NOT NULL DEFAULT TRUE,
	is_email_verified BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP
);`

// Profiles is the repository surface behind the bun-backed ProfileStore.
type Profiles interface {
	repository.Repository[*Profile]
}

// NewProfilesRepository builds the generic bun repository for profiles.
func NewProfilesRepository(db *bun.DB) Profiles {
	handlers := repository.ModelHandlers[*Profile]{
		NewRecord: func() *Profile { return &Profile{} },
		GetID: func(record *Profile) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			if id, err := uuid.Parse(record.ID); err == nil {
				return id
			}
			return uuid.Nil
		},
		SetID: func(record *Profile, id uuid.UUID) {
			if record != nil {
				record.ID = id.String()
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	}
	return repository.NewRepository[*Profile](db, handlers)
}

type bunProfileStore struct {
	db   *bun.DB
	repo Profiles
}

var _ ProfileStore = (*bunProfileStore)(nil)

// NewProfileStore wraps a bun database in the ProfileStore document
// contract the Manager consumes.
func NewProfileStore(db *bun.DB) ProfileStore {
	return &bunProfileStore{db: db, repo: NewProfilesRepository(db)}
}

func (s *bunProfileStore) GetDocument(ctx context.Context, id string) (*Profile, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, err
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load profile document")
	}
	return profile, nil
}

func (s *bunProfileStore) SetDocument(ctx context.Context, id string, profile *Profile) error {
	if profile == nil {
		return goerrors.New("profile must not be nil", goerrors.CategoryBadInput)
	}
	profile.ID = id
	now := time.Now()
	if profile.CreatedAt == nil {
		profile.CreatedAt = &now
	}
	profile.UpdatedAt = &now

	if _, err := s.repo.Upsert(ctx, profile); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to write profile document")
	}
	return nil
}

func (s *bunProfileStore) UpdateDocument(ctx context.Context, id string, update ProfileUpdate) error {
	if update.IsZero() {
		return nil
	}

	record := &Profile{ID: id}
	columns := make([]string, 0, 7)

	if update.Name != nil {
		record.Name = *update.Name
		columns = append(columns, "name")
	}
	if update.IBGEMunicipio != nil {
		record.IBGEMunicipio = *update.IBGEMunicipio
		columns = append(columns, "ibge_municipio")
	}
	if update.MunicipioNome != nil {
		record.MunicipioNome = *update.MunicipioNome
		columns = append(columns, "municipio_nome")
	}
	if update.Equipes != nil {
		record.Equipes = *update.Equipes
		columns = append(columns, "equipes")
	}
	if update.CNESUnidades != nil {
		record.CNESUnidades = *update.CNESUnidades
		columns = append(columns, "cnes_unidades")
	}
	if update.Active != nil {
		record.Active = *update.Active
		columns = append(columns, "active")
	}

	now := time.Now()
	record.UpdatedAt = &now
	columns = append(columns, "updated_at")

	res, err := s.db.NewUpdate().
		Model(record).
		Column(columns...).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update profile document")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return goerrors.New("profile document not found", goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound)
	}
	return nil
}

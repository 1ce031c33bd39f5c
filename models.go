package idosoms

import (
	"time"

	"github.com/uptrace/bun"
)

// UserRole is the application-level role stored on a profile
type UserRole = string

const (
	// RoleSuperAdmin has every permission and sees every municipality
	RoleSuperAdmin UserRole = "superadmin"
	// RoleAdmin has every permission and sees every municipality
	RoleAdmin UserRole = "admin"
	// RoleCoord coordinates teams inside a single municipality
	RoleCoord UserRole = "coord"
	// RoleAgente is the default field-agent role for new accounts
	RoleAgente UserRole = "agente"
)

// ValidRole checks the role against the predefined set
func ValidRole(r UserRole) bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleCoord, RoleAgente:
		return true
	default:
		return false
	}
}

// AllRoles returns the predefined roles, most privileged first
func AllRoles() []UserRole {
	return []UserRole{RoleSuperAdmin, RoleAdmin, RoleCoord, RoleAgente}
}

// Profile is the application user record keyed by identity id. Consumers
// of the session store always receive clones; the manager owns the only
// mutable instance and replaces it on every reload.
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:prf"`

	ID            string     `bun:"id,pk" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Email         string     `bun:"email,notnull" json:"email,omitempty"`
	CPFHash       string     `bun:"cpf_hash" json:"cpf_hash,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	IBGEMunicipio string     `bun:"ibge_municipio" json:"ibge_municipio,omitempty"`
	MunicipioNome string     `bun:"municipio_nome" json:"municipio_nome,omitempty"`
	Equipes       []string   `bun:"equipes,type:text" json:"equipes,omitempty"`
	CNESUnidades  []string   `bun:"cnes_unidades,type:text" json:"cnes_unidades,omitempty"`
	Active        bool       `bun:"active,notnull" json:"active,omitempty"`
	EmailVerified bool       `bun:"is_email_verified" json:"is_email_verified,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Clone returns a deep copy so consumers can never mutate the manager's
// authoritative instance.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	if p.Equipes != nil {
		out.Equipes = append([]string(nil), p.Equipes...)
	}
	if p.CNESUnidades != nil {
		out.CNESUnidades = append([]string(nil), p.CNESUnidades...)
	}
	if p.CreatedAt != nil {
		t := *p.CreatedAt
		out.CreatedAt = &t
	}
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		out.UpdatedAt = &t
	}
	return &out
}

// DefaultProfile builds the fallback record used when the store has no
// document for the identity: default role "agente", no municipality.
func DefaultProfile(identity Identity) *Profile {
	now := time.Now()
	return &Profile{
		ID:            identity.ID(),
		Name:          identity.DisplayName(),
		Email:         identity.Email(),
		Role:          RoleAgente,
		Active:        true,
		EmailVerified: identity.EmailVerified(),
		CreatedAt:     &now,
	}
}

// ProfileUpdate is a partial write against a profile document. Nil fields
// are left untouched. The manager never trusts the local merge: after a
// successful update it reloads the full document from the store.
type ProfileUpdate struct {
	Name          *string
	IBGEMunicipio *string
	MunicipioNome *string
	Equipes       *[]string
	CNESUnidades  *[]string
	Active        *bool
}

// IsZero reports whether the update carries no fields.
func (u ProfileUpdate) IsZero() bool {
	return u.Name == nil && u.IBGEMunicipio == nil && u.MunicipioNome == nil &&
		u.Equipes == nil && u.CNESUnidades == nil && u.Active == nil
}

package repository

import (
	"context"
	"time"

	"github.com/aluenvelas/Back-aluen/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, usuario *model.Usuario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	Update(ctx context.Context, usuario *model.Usuario) error
	RegistrarAcceso(ctx context.Context, id uuid.UUID, momento time.Time) error
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, usuario *model.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var usuario model.Usuario
	err := r.db.WithContext(ctx).First(&usuario, "id = ?", id).Error
	return &usuario, err
}

func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var usuario model.Usuario
	err := r.db.WithContext(ctx).Where("email = ? AND activo = true", email).First(&usuario).Error
	return &usuario, err
}

func (r *usuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) Update(ctx context.Context, usuario *model.Usuario) error {
	return r.db.WithContext(ctx).Save(usuario).Error
}

func (r *usuarioRepo) RegistrarAcceso(ctx context.Context, id uuid.UUID, momento time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("id = ?", id).
		Update("ultimo_acceso", momento).Error
}

func (r *usuarioRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("id = ?", id).
		Update("activo", false).Error
}

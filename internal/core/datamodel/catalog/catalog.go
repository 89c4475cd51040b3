package catalog

// Persisted mirror of the in-process reference catalog. Seeded by the seed
// command so grant rows have stable foreign keys; never written at runtime.

type Department struct {
	ID            string `gorm:"primaryKey"`
	NameEn        string `gorm:"column:name_en;not null"`
	NameFr        string `gorm:"column:name_fr;not null"`
	DescriptionEn string `gorm:"column:description_en"`
	DescriptionFr string `gorm:"column:description_fr"`
	Color         string `gorm:"column:color"`
	Icon          string `gorm:"column:icon"`
	Services      string `gorm:"column:services"`
}

func (Department) TableName() string {
	return "departments"
}

type Division struct {
	ID            string `gorm:"primaryKey"`
	NameEn        string `gorm:"column:name_en;not null"`
	NameFr        string `gorm:"column:name_fr;not null"`
	DescriptionEn string `gorm:"column:description_en"`
	DescriptionFr string `gorm:"column:description_fr"`
}

func (Division) TableName() string {
	return "divisions"
}

type Office struct {
	ID            string `gorm:"primaryKey"`
	DivisionID    string `gorm:"column:division_id;not null;index"`
	NameEn        string `gorm:"column:name_en;not null"`
	NameFr        string `gorm:"column:name_fr;not null"`
	DescriptionEn string `gorm:"column:description_en"`
	DescriptionFr string `gorm:"column:description_fr"`
}

func (Office) TableName() string {
	return "offices"
}

package catalog

// Static reference catalog. The portal treats this as immutable: the seeder
// copies it into Postgres so grant rows have foreign keys to point at, but
// the in-process catalog is always the source of truth for rendering.

var departments = []Department{
	{
		ID:          LandCadastralDepartmentID,
		Name:        LocalizedText{En: "Land & Cadastral Affairs", Fr: "Affaires Foncières et Cadastrales"},
		Description: LocalizedText{En: "Land titling, cadastral surveys and property regularization procedures.", Fr: "Immatriculation foncière, levés cadastraux et procédures de régularisation des propriétés."},
		Color:       "#2F6B4F",
		Icon:        "map",
		Services:    []string{"land-titling", "cadastral-survey", "boundary-demarcation", "title-regularization"},
	},
	{
		ID:          "financing",
		Name:        LocalizedText{En: "Financing", Fr: "Financement"},
		Description: LocalizedText{En: "Land acquisition credit plans and installment financing offers.", Fr: "Plans de crédit pour l'acquisition de terrains et offres de financement échelonné."},
		Color:       "#B8860B",
		Icon:        "bank",
		Services:    []string{"credit-plans", "installment-offers", "guarantee-assessment"},
	},
	{
		ID:          "sales",
		Name:        LocalizedText{En: "Sales", Fr: "Ventes"},
		Description: LocalizedText{En: "Serviced plots and property sales services.", Fr: "Vente de parcelles viabilisées et services de vente immobilière."},
		Color:       "#8B2E2E",
		Icon:        "handshake",
		Services:    []string{"plot-sales", "property-listings", "site-visits"},
	},
	{
		ID:          "legal",
		Name:        LocalizedText{En: "Legal Affairs", Fr: "Affaires Juridiques"},
		Description: LocalizedText{En: "Notarial follow-up, litigation and contract review.", Fr: "Suivi notarial, contentieux et revue des contrats."},
		Color:       "#1F3A5F",
		Icon:        "scale",
		Services:    []string{"notarial-followup", "litigation", "contract-review"},
	},
	{
		ID:          "topography",
		Name:        LocalizedText{En: "Topography", Fr: "Topographie"},
		Description: LocalizedText{En: "Field surveys, terrain modeling and demarcation works.", Fr: "Levés de terrain, modélisation du relief et travaux de bornage."},
		Color:       "#4E6E58",
		Icon:        "compass",
		Services:    []string{"field-surveys", "terrain-modeling", "demarcation"},
	},
	{
		ID:          "urban-planning",
		Name:        LocalizedText{En: "Urban Planning", Fr: "Urbanisme"},
		Description: LocalizedText{En: "Subdivision plans, zoning studies and development permits.", Fr: "Plans de lotissement, études de zonage et permis d'aménagement."},
		Color:       "#6B4F2F",
		Icon:        "city",
		Services:    []string{"subdivision-plans", "zoning-studies", "development-permits"},
	},
	{
		ID:          "customer-relations",
		Name:        LocalizedText{En: "Customer Relations", Fr: "Relations Clientèle"},
		Description: LocalizedText{En: "Client onboarding, follow-up and complaint handling.", Fr: "Accueil des clients, suivi des dossiers et traitement des réclamations."},
		Color:       "#555577",
		Icon:        "people",
		Services:    []string{"client-onboarding", "case-followup", "complaints"},
	},
	{
		ID:          "logistics",
		Name:        LocalizedText{En: "Logistics", Fr: "Logistique"},
		Description: LocalizedText{En: "Fleet, equipment and site logistics support.", Fr: "Appui logistique pour le parc automobile, les équipements et les sites."},
		Color:       "#3A3A3A",
		Icon:        "truck",
		Services:    []string{"fleet", "equipment", "site-logistics"},
	},
}

var divisions = []Division{
	{
		ID:          "human-resources",
		Name:        LocalizedText{En: "Human Resources", Fr: "Ressources Humaines"},
		Description: LocalizedText{En: "Personnel registration, payroll and staff administration.", Fr: "Enregistrement du personnel, paie et administration du personnel."},
		Offices: []Office{
			{ID: "hr-personnel", DivisionID: "human-resources", Name: LocalizedText{En: "Personnel Office", Fr: "Bureau du Personnel"}, Description: LocalizedText{En: "Staff records and registrations.", Fr: "Dossiers du personnel et enregistrements."}},
			{ID: "hr-payroll", DivisionID: "human-resources", Name: LocalizedText{En: "Payroll Office", Fr: "Bureau de la Paie"}, Description: LocalizedText{En: "Salary processing and benefits.", Fr: "Traitement des salaires et avantages."}},
		},
	},
	{
		ID:          "documentation",
		Name:        LocalizedText{En: "Documentation", Fr: "Documentation"},
		Description: LocalizedText{En: "Document registry and assignment tracking.", Fr: "Registre des documents et suivi des affectations."},
		Offices: []Office{
			{ID: "doc-registry", DivisionID: "documentation", Name: LocalizedText{En: "Registry Office", Fr: "Bureau du Registre"}, Description: LocalizedText{En: "Incoming and outgoing document tracking.", Fr: "Suivi des documents entrants et sortants."}},
		},
	},
	{
		ID:          "logistics-support",
		Name:        LocalizedText{En: "Logistics Support", Fr: "Appui Logistique"},
		Description: LocalizedText{En: "Fleet and warehouse management.", Fr: "Gestion du parc automobile et des entrepôts."},
		Offices: []Office{
			{ID: "log-fleet", DivisionID: "logistics-support", Name: LocalizedText{En: "Fleet Office", Fr: "Bureau du Parc Automobile"}, Description: LocalizedText{En: "Vehicle allocation and maintenance.", Fr: "Affectation et entretien des véhicules."}},
			{ID: "log-warehouse", DivisionID: "logistics-support", Name: LocalizedText{En: "Warehouse Office", Fr: "Bureau des Entrepôts"}, Description: LocalizedText{En: "Stock and equipment storage.", Fr: "Stockage du matériel et des équipements."}},
		},
	},
	{
		ID:          "it-systems",
		Name:        LocalizedText{En: "IT Systems", Fr: "Systèmes Informatiques"},
		Description: LocalizedText{En: "Portal operations and user support.", Fr: "Exploitation du portail et assistance aux utilisateurs."},
		Offices: []Office{
			{ID: "it-support", DivisionID: "it-systems", Name: LocalizedText{En: "Support Office", Fr: "Bureau d'Assistance"}, Description: LocalizedText{En: "Helpdesk and account management.", Fr: "Assistance et gestion des comptes."}},
			{ID: "it-infrastructure", DivisionID: "it-systems", Name: LocalizedText{En: "Infrastructure Office", Fr: "Bureau des Infrastructures"}, Description: LocalizedText{En: "Servers, network and backups.", Fr: "Serveurs, réseau et sauvegardes."}},
		},
	},
}

// defaultDepartment is rendered when a department-detail view is requested
// for an id that is not in the catalog.
var defaultDepartment = Department{
	ID:          "general",
	Name:        LocalizedText{En: "GeoCasa Group", Fr: "Groupe GeoCasa"},
	Description: LocalizedText{En: "General information about GeoCasa Group services.", Fr: "Informations générales sur les services du Groupe GeoCasa."},
	Color:       "#444444",
	Icon:        "building",
	Services:    []string{},
}

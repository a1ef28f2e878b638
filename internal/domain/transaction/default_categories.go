package transaction

type Category string

const (
	CategoryFood        Category = "FOOD"
	CategoryTransport   Category = "TRANSPORT"
	CategoryHealth      Category = "HEALTH"
	CategoryEducation   Category = "EDUCATION"
	CategoryLeisure     Category = "LEISURE"
	CategoryHousing     Category = "HOUSING"
	CategoryShopping    Category = "SHOPPING"
	CategoryBills       Category = "BILLS"
	CategorySalary      Category = "SALARY"
	CategoryFreelance   Category = "FREELANCE"
	CategoryInvestments Category = "INVESTMENTS"
	CategoryOther       Category = "OTHER"
)

type DefaultCategoryDefinition struct {
	Code Category `json:"code"`
	Name string   `json:"name"`
	Icon string   `json:"icon"`
}

var DefaultCategories = []DefaultCategoryDefinition{
	{Code: CategoryFood, Name: "Alimentação", Icon: "food"},
	{Code: CategoryTransport, Name: "Transporte", Icon: "car"},
	{Code: CategoryHealth, Name: "Saúde", Icon: "health"},
	{Code: CategoryEducation, Name: "Educação", Icon: "education"},
	{Code: CategoryLeisure, Name: "Lazer", Icon: "entertainment"},
	{Code: CategoryHousing, Name: "Moradia", Icon: "home"},
	{Code: CategoryShopping, Name: "Compras", Icon: "shopping"},
	{Code: CategoryBills, Name: "Contas", Icon: "bills"},
	{Code: CategorySalary, Name: "Salário", Icon: "salary"},
	{Code: CategoryFreelance, Name: "Freelance", Icon: "freelance"},
	{Code: CategoryInvestments, Name: "Investimentos", Icon: "investment"},
	{Code: CategoryOther, Name: "Outros", Icon: "other"},
}

func (c Category) IsValid() bool {
	_, ok := LookupCategory(c)
	return ok
}

func LookupCategory(c Category) (DefaultCategoryDefinition, bool) {
	for _, def := range DefaultCategories {
		if def.Code == c {
			return def, true
		}
	}
	return DefaultCategoryDefinition{}, false
}

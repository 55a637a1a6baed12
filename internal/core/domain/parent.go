package domain

type Parent string

const (
	ParentMom Parent = "MOM"
	ParentDad Parent = "DAD"
)

// Invert возвращает второго родителя
func (p Parent) Invert() Parent {
	if p == ParentMom {
		return ParentDad
	}
	return ParentMom
}

func (p Parent) IsValid() bool {
	return p == ParentMom || p == ParentDad
}

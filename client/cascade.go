package client

import "context"

// AreaCascade manages the 4-level location selection: each level's options
// load when its parent is chosen, and re-selecting a parent resets every
// descendant selection and option list. Nothing is cached across
// re-selections.
type AreaCascade struct {
	client *Client

	Divisions []Division
	Districts []District
	Thanas    []Thana
	Unions    []Union

	SelectedDivision *int
	SelectedDistrict *int
	SelectedThana    *int
	SelectedUnion    *int
}

func NewAreaCascade(client *Client) *AreaCascade {
	return &AreaCascade{client: client}
}

// Load fetches the division list; the lower levels stay empty until their
// parents are selected.
func (a *AreaCascade) Load(ctx context.Context) error {
	divisions, err := a.client.Divisions(ctx)
	if err != nil {
		return err
	}
	a.Divisions = divisions
	return nil
}

// SelectDivision chooses a division, clears all descendants, and loads its
// districts.
func (a *AreaCascade) SelectDivision(ctx context.Context, divisionID int) error {
	a.SelectedDivision = &divisionID
	a.resetDistricts()

	districts, err := a.client.Districts(ctx, divisionID)
	if err != nil {
		return err
	}
	a.Districts = districts
	return nil
}

// SelectDistrict chooses a district and loads its thanas. The district
// selector is meaningless without a division.
func (a *AreaCascade) SelectDistrict(ctx context.Context, districtID int) error {
	if a.SelectedDivision == nil {
		return nil
	}
	a.SelectedDistrict = &districtID
	a.resetThanas()

	thanas, err := a.client.Thanas(ctx, districtID)
	if err != nil {
		return err
	}
	a.Thanas = thanas
	return nil
}

// SelectThana chooses a thana and loads its unions.
func (a *AreaCascade) SelectThana(ctx context.Context, thanaID int) error {
	if a.SelectedDistrict == nil {
		return nil
	}
	a.SelectedThana = &thanaID
	a.resetUnions()

	unions, err := a.client.Unions(ctx, thanaID)
	if err != nil {
		return err
	}
	a.Unions = unions
	return nil
}

// SelectUnion chooses the leaf level.
func (a *AreaCascade) SelectUnion(unionID int) {
	if a.SelectedThana == nil {
		return
	}
	a.SelectedUnion = &unionID
}

func (a *AreaCascade) resetDistricts() {
	a.SelectedDistrict = nil
	a.Districts = nil
	a.resetThanas()
}

func (a *AreaCascade) resetThanas() {
	a.SelectedThana = nil
	a.Thanas = nil
	a.resetUnions()
}

func (a *AreaCascade) resetUnions() {
	a.SelectedUnion = nil
	a.Unions = nil
}

package domain

// Partner is the event-producing counterpart of Customer, keyed by CNPJ.
type Partner struct {
	id    PartnerID
	name  Name
	cnpj  CNPJ
	email Email
}

// NewPartner validates name, cnpj and email in that order and assigns a
// fresh id.
func NewPartner(name, cnpj, email string) (*Partner, error) {
	return buildPartner(NewPartnerID(), name, cnpj, email)
}

// WithPartner reconstructs a partner from a known id.
func WithPartner(id PartnerID, name, cnpj, email string) (*Partner, error) {
	if id.IsZero() {
		return nil, newInvalidValue("PartnerID")
	}
	return buildPartner(id, name, cnpj, email)
}

func buildPartner(id PartnerID, name, cnpj, email string) (*Partner, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	c, err := NewCNPJ(cnpj)
	if err != nil {
		return nil, err
	}
	e, err := NewEmail(email)
	if err != nil {
		return nil, err
	}
	return &Partner{id: id, name: n, cnpj: c, email: e}, nil
}

func (p *Partner) ID() PartnerID { return p.id }
func (p *Partner) Name() Name    { return p.name }
func (p *Partner) CNPJ() CNPJ    { return p.cnpj }
func (p *Partner) Email() Email  { return p.email }

func (p *Partner) Equals(other *Partner) bool {
	return other != nil && p.id == other.id
}

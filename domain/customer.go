package domain

// Customer is a validated identity-equal aggregate. It has no mutating
// operations; storage rehydrates it through WithCustomer.
type Customer struct {
	id    CustomerID
	name  Name
	cpf   CPF
	email Email
}

// NewCustomer validates the scalar fields (name, cpf, email — first failure
// wins) and assigns a fresh id.
func NewCustomer(name, cpf, email string) (*Customer, error) {
	return buildCustomer(NewCustomerID(), name, cpf, email)
}

// WithCustomer reconstructs a customer from a known id, re-running field
// validation.
func WithCustomer(id CustomerID, name, cpf, email string) (*Customer, error) {
	if id.IsZero() {
		return nil, newInvalidValue("CustomerID")
	}
	return buildCustomer(id, name, cpf, email)
}

func buildCustomer(id CustomerID, name, cpf, email string) (*Customer, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	c, err := NewCPF(cpf)
	if err != nil {
		return nil, err
	}
	e, err := NewEmail(email)
	if err != nil {
		return nil, err
	}
	return &Customer{id: id, name: n, cpf: c, email: e}, nil
}

func (c *Customer) ID() CustomerID { return c.id }
func (c *Customer) Name() Name     { return c.name }
func (c *Customer) CPF() CPF       { return c.cpf }
func (c *Customer) Email() Email   { return c.email }

// Equals compares by identity.
func (c *Customer) Equals(other *Customer) bool {
	return other != nil && c.id == other.id
}

package introspect

import (
	"sort"

	"github.com/ygrebnov/bind/config"
	"github.com/ygrebnov/bind/constants"
	"github.com/ygrebnov/bind/model"
)

// Parser produces the property models of a class level from its element.
type Parser struct {
	introspector *Introspector
	naming       config.NamingStrategy
	order        config.OrderStrategy
}

func NewParser(in *Introspector, cfg config.Config) *Parser {
	return &Parser{introspector: in, naming: cfg.PropertyNaming, order: cfg.PropertyOrder}
}

// ParseProperties returns the exported, non-transient fields of el as properties of cm.
// Properties listed in the class property order come first, in that order;
// the rest follow sorted by the order strategy on their write names.
func (p *Parser) ParseProperties(cm *model.ClassModel, el *Element) ([]*model.PropertyModel, error) {
	var props []*model.PropertyModel
	for _, fe := range el.Fields {
		if !fe.Field.IsExported() || fe.Has(constants.DirectiveTransient) || fe.Has(constants.DirectiveSkip) {
			continue
		}
		c, err := p.introspector.IntrospectPropertyCustomization(cm, fe)
		if err != nil {
			return nil, err
		}
		props = append(props, model.NewPropertyModel(cm, fe.Field, p.naming.Translate(fe.Field.Name), c))
	}
	return p.sort(props, cm.Customization().PropertyOrder()), nil
}

func (p *Parser) sort(props []*model.PropertyModel, explicit []string) []*model.PropertyModel {
	rank := make(map[string]int, len(explicit))
	for i, name := range explicit {
		if _, dup := rank[name]; !dup {
			rank[name] = i
		}
	}
	rankOf := func(pm *model.PropertyModel) (int, bool) {
		for _, n := range []string{pm.Name(), pm.WriteName(), pm.FieldName()} {
			if r, ok := rank[n]; ok {
				return r, true
			}
		}
		return 0, false
	}

	sort.SliceStable(props, func(i, j int) bool {
		ri, oki := rankOf(props[i])
		rj, okj := rankOf(props[j])
		switch {
		case oki && okj:
			return ri < rj
		case oki != okj:
			return oki
		default:
			return p.order.Less(props[i].WriteName(), props[j].WriteName())
		}
	})
	return props
}

package tui

import (
	"fmt"
	"strings"

	"github.com/CauceloJuanma/reserva/internal/reservation"
	"github.com/CauceloJuanma/reserva/internal/tui/styles"
)

func (m Model) renderCompanies() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Empresas") + "\n")
	if m.companies.loading {
		b.WriteString(m.spin.View() + " Cargando empresas...\n")
		return b.String()
	}
	if len(m.companies.items) == 0 {
		b.WriteString(styles.Muted.Render("No hay empresas disponibles.") + "\n")
		return b.String()
	}
	for i, company := range m.companies.items {
		line := fmt.Sprintf("%-30s %s", company.Nombre, styles.Muted.Render(company.Direccion))
		if i == m.companies.cursor {
			b.WriteString(styles.Selected.Render("> "+company.Nombre) + "  " + styles.Muted.Render(company.Direccion) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

func (m Model) renderProducts() string {
	var b strings.Builder
	title := "Productos"
	if m.products.companyName != "" {
		title = "Productos de " + m.products.companyName
	}
	b.WriteString(styles.Title.Render(title) + "\n")
	if m.products.loading {
		b.WriteString(m.spin.View() + " Cargando productos...\n")
		return b.String()
	}
	if len(m.products.items) == 0 {
		b.WriteString(styles.Muted.Render("Esta empresa no tiene productos.") + "\n")
		return b.String()
	}
	for i, p := range m.products.items {
		stock := fmt.Sprintf("stock %d", p.Stock)
		if p.Stock <= 0 {
			stock = styles.Error.Render("sin stock")
		}
		line := fmt.Sprintf("%-28s %10s  %s", p.Nombre, m.money(p.Precio), stock)
		if i == m.products.cursor {
			b.WriteString(styles.Selected.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

func (m Model) renderReserve() string {
	var b strings.Builder
	p := m.reserve.product
	b.WriteString(styles.Title.Render("Nueva reserva") + "\n")
	b.WriteString(p.Nombre + "\n")
	if p.Descripcion != "" {
		b.WriteString(styles.Muted.Render(p.Descripcion) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Precio unitario: %s\n", m.money(p.Precio)))
	b.WriteString(fmt.Sprintf("Cantidad: %s\n", styles.Primary.Render(fmt.Sprintf("%d", m.reserve.qty))))
	b.WriteString(fmt.Sprintf("Total: %s\n", styles.Text.Render(m.money(float64(m.reserve.qty)*p.Precio))))
	if m.reserve.fieldErr != "" {
		b.WriteString("\n" + styles.Error.Render(m.reserve.fieldErr) + "\n")
	}
	if m.reserve.submitting {
		b.WriteString("\n" + m.spin.View() + " Creando reserva...\n")
	}
	return styles.Box.Render(b.String()) + "\n"
}

func (m Model) renderReservations() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Mis Reservas") + "\n")
	if m.list.loading {
		b.WriteString(m.spin.View() + " Cargando reservas...\n")
		return b.String()
	}
	if len(m.list.items) == 0 {
		b.WriteString(styles.Muted.Render("No tienes reservas todavía. Pulsa 'e' para explorar las empresas.") + "\n")
		return b.String()
	}
	for i, r := range m.list.items {
		line := fmt.Sprintf("#%-5d %-22s %-18s %2d uds %10s  %s  %s",
			r.ID, r.Empresa, r.Producto, r.ItemsCount, m.money(r.Total), r.Fecha, statusBadge(r.EstadoID))
		if i == m.list.cursor {
			b.WriteString(styles.Selected.Render(fmt.Sprintf("> #%d %s", r.ID, r.Empresa)) +
				fmt.Sprintf("  %s %s %s\n", m.money(r.Total), r.Fecha, statusBadge(r.EstadoID)))
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

func (m Model) renderDetail() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(fmt.Sprintf("Reserva #%d", m.detail.id)) + "\n")
	if m.detail.loading || m.detail.res == nil {
		b.WriteString(m.spin.View() + " Cargando reserva...\n")
		return b.String()
	}
	r := m.detail.res
	b.WriteString("Estado: " + statusBadge(r.EstadoID) + "\n")
	b.WriteString("Empresa: " + r.Empresa.Nombre + "\n")
	if !r.CreatedAt.IsZero() {
		b.WriteString("Fecha: " + r.CreatedAt.Format(m.cfg.TUI.DateFormat) + "\n")
	}
	b.WriteString("\n")
	for _, l := range r.Lineas {
		b.WriteString(fmt.Sprintf("  %-28s %3d × %10s = %10s\n",
			l.Producto.Nombre, l.Cantidad, m.money(l.PrecioUnitario), m.money(l.Subtotal)))
	}
	b.WriteString(fmt.Sprintf("\nTotal: %s\n", styles.Text.Bold(true).Render(m.money(r.Total()))))

	switch {
	case m.detail.confirming:
		b.WriteString("\n" + m.spin.View() + " Confirmando reserva...\n")
	case m.detail.canceling:
		b.WriteString("\n" + m.spin.View() + " Cancelando reserva...\n")
	default:
		var actions []string
		if r.EstadoID.CanConfirm() {
			actions = append(actions, styles.Primary.Render("[c]")+" Confirmar")
		}
		if r.EstadoID.CanCancel() {
			actions = append(actions, styles.Error.Render("[x]")+" Cancelar")
		}
		if len(actions) > 0 {
			b.WriteString("\n" + strings.Join(actions, "   ") + "\n")
		}
	}

	if m.detail.dialog != nil {
		b.WriteString("\n" + styles.DialogBox.Render(
			m.detail.dialog.prompt+"\n\n"+styles.Primary.Render("[s]")+" sí   "+styles.Muted.Render("[n]")+" no") + "\n")
	}
	return b.String()
}

func statusBadge(s reservation.Status) string {
	switch s {
	case reservation.StatusPending:
		return styles.BadgePending.Render(s.String())
	case reservation.StatusConfirmed:
		return styles.BadgeConfirmed.Render(s.String())
	case reservation.StatusCanceled:
		return styles.BadgeCanceled.Render(s.String())
	default:
		return styles.Muted.Render(s.String())
	}
}

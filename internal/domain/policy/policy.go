// Package policy centraliza las decisiones de autorización por rol y recurso.
// Son predicados puros: reciben actor y recurso, devuelven bool, sin efectos.
// Los handlers traducen false en una respuesta 403.
package policy

import "github.com/raktsetu/raktsetu-api/internal/domain/entity"

// ── Usuarios ──────────────────────────────────────────────────────────────────

// CanListUsers solo la autoridad puede listar todos los usuarios.
func CanListUsers(actorRole string) bool {
	return actorRole == entity.RoleAuthority
}

// CanReadUser el propio usuario o la autoridad.
func CanReadUser(actorID, actorRole, targetID string) bool {
	return actorID == targetID || actorRole == entity.RoleAuthority
}

// CanUpdateUser el propio usuario o la autoridad.
func CanUpdateUser(actorID, actorRole, targetID string) bool {
	return actorID == targetID || actorRole == entity.RoleAuthority
}

// CanChangeRole el campo role es inmutable salvo para la autoridad.
func CanChangeRole(actorRole string) bool {
	return actorRole == entity.RoleAuthority
}

// CanDeleteUser solo la autoridad elimina usuarios.
func CanDeleteUser(actorRole string) bool {
	return actorRole == entity.RoleAuthority
}

// CanListDonors hospitales y autoridades pueden ver el listado de donantes.
func CanListDonors(actorRole string) bool {
	return actorRole == entity.RoleHospital || actorRole == entity.RoleAuthority
}

// ── Donaciones ────────────────────────────────────────────────────────────────

// CanCreateDonation donantes y hospitales agendan donaciones (cada uno aporta
// el id de la contraparte).
func CanCreateDonation(actorRole string) bool {
	return actorRole == entity.RoleDonor || actorRole == entity.RoleHospital
}

// CanReadDonation donante: las suyas; hospital: las recibidas; autoridad: todas.
func CanReadDonation(actorID, actorRole string, d *entity.Donation) bool {
	switch actorRole {
	case entity.RoleDonor:
		return d.DonorID == actorID
	case entity.RoleHospital:
		return d.HospitalID == actorID
	case entity.RoleAuthority:
		return true
	}
	return false
}

// CanUpdateDonation mismas reglas de propiedad que la lectura; la restricción
// de campos del donante (solo status=cancelled) se aplica en el caso de uso.
func CanUpdateDonation(actorID, actorRole string, d *entity.Donation) bool {
	return CanReadDonation(actorID, actorRole, d)
}

// CanDeleteDonation solo la autoridad.
func CanDeleteDonation(actorRole string) bool {
	return actorRole == entity.RoleAuthority
}

// ── Inventario ────────────────────────────────────────────────────────────────

// CanReadInventory hospital: solo el propio; donante y autoridad: cualquiera.
func CanReadInventory(actorID, actorRole string, inv *entity.BloodInventory) bool {
	switch actorRole {
	case entity.RoleHospital:
		return inv.HospitalID == actorID
	case entity.RoleDonor, entity.RoleAuthority:
		return true
	}
	return false
}

// CanReadHospitalInventory acceso al inventario completo de un hospital:
// el propio hospital, cualquier donante (solo lectura) o la autoridad.
func CanReadHospitalInventory(actorID, actorRole, hospitalID string) bool {
	if actorRole == entity.RoleHospital {
		return hospitalID == actorID
	}
	return actorRole == entity.RoleDonor || actorRole == entity.RoleAuthority
}

// CanWriteInventory crear/actualizar/eliminar stock: el hospital sobre el suyo
// o la autoridad sobre cualquiera. Los donantes solo leen.
func CanWriteInventory(actorID, actorRole, hospitalID string) bool {
	switch actorRole {
	case entity.RoleHospital:
		return hospitalID == actorID
	case entity.RoleAuthority:
		return true
	}
	return false
}

// ── Alertas ───────────────────────────────────────────────────────────────────

// CanCreateAlert solo hospitales emiten alertas.
func CanCreateAlert(actorRole string) bool {
	return actorRole == entity.RoleHospital
}

// CanManageAlert actualizar/resolver/eliminar: el creador o la autoridad.
func CanManageAlert(actorID, actorRole string, a *entity.Alert) bool {
	return a.CreatorID == actorID || actorRole == entity.RoleAuthority
}

// AlertVisible visibilidad en listados: donante ve solo activas (y de su tipo
// de sangre si lo tiene registrado); hospital ve las suyas más las activas;
// autoridad ve todas.
func AlertVisible(actor *entity.User, a *entity.Alert) bool {
	switch actor.Role {
	case entity.RoleDonor:
		if a.Status != entity.AlertActive {
			return false
		}
		if actor.Donor != nil && actor.Donor.BloodType != "" {
			return a.BloodType == actor.Donor.BloodType
		}
		return true
	case entity.RoleHospital:
		return a.CreatorID == actor.ID || a.Status == entity.AlertActive
	case entity.RoleAuthority:
		return true
	}
	return false
}

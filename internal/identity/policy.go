package identity

import "github.com/RodrigoGoisOficial/SchoolOfDevs/internal/model"

// Allowed はroleがrequiredのいずれかの能力を満たすかを判定する。
// requiredが空の場合は常に許可する。RoleBothは学生・教師どちらの
// 要求も満たす。トランスポート層から独立した純粋な判定関数。
func Allowed(role model.Role, required ...model.Role) bool {
	if len(required) == 0 {
		return true
	}
	for _, req := range required {
		switch req {
		case model.RoleStudent:
			if role.CanStudy() {
				return true
			}
		case model.RoleTeacher:
			if role.CanTeach() {
				return true
			}
		case model.RoleBoth:
			if role == model.RoleBoth {
				return true
			}
		}
	}
	return false
}

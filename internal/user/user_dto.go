package user

type CreateUserRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role" binding:"required,oneof=ADMIN HOD STAFF STUDENT"`
	Department string `json:"department" binding:"required,oneof=CSE ECE MECH CIVIL EEE"`
	Gender     string `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Image      string `json:"image"`
}

// RegisterStudentRequest is the self-service signup; the role is always
// STUDENT regardless of what the caller sends.
type RegisterStudentRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Department string `json:"department" binding:"required,oneof=CSE ECE MECH CIVIL EEE"`
	Gender     string `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

type UpdateUserRequest struct {
	Name       string `json:"name" binding:"required"`
	Role       string `json:"role" binding:"required,oneof=ADMIN HOD STAFF STUDENT"`
	Department string `json:"department" binding:"required,oneof=CSE ECE MECH CIVIL EEE"`
	Gender     string `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Image      string `json:"image"`
}

type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Gender     string `json:"gender,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	Image      string `json:"image,omitempty"`
	CreatedAt  string `json:"created_at"`
}
